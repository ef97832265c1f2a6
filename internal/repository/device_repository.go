package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sms-project/sms-backend/internal/model"
)

// DeviceRepository handles authorized attendance device data access.
type DeviceRepository struct {
	pool *pgxpool.Pool
}

// NewDeviceRepository creates a new DeviceRepository.
func NewDeviceRepository(pool *pgxpool.Pool) *DeviceRepository {
	return &DeviceRepository{pool: pool}
}

const deviceColumns = `id, device_id, name, is_active, created_at, updated_at`

// GetByDeviceID retrieves a device by its opaque device identifier.
func (r *DeviceRepository) GetByDeviceID(ctx context.Context, deviceID string) (*model.AuthorizedDevice, error) {
	d := &model.AuthorizedDevice{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+deviceColumns+` FROM authorized_devices WHERE device_id = $1`, deviceID,
	).Scan(&d.ID, &d.DeviceID, &d.Name, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

// List retrieves all registered devices.
func (r *DeviceRepository) List(ctx context.Context) ([]model.AuthorizedDevice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+deviceColumns+` FROM authorized_devices ORDER BY name`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var devices []model.AuthorizedDevice
	for rows.Next() {
		var d model.AuthorizedDevice
		if err := rows.Scan(&d.ID, &d.DeviceID, &d.Name, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

// Create inserts a new device.
func (r *DeviceRepository) Create(ctx context.Context, d *model.AuthorizedDevice) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO authorized_devices (device_id, name, is_active)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		d.DeviceID, d.Name, d.IsActive,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	return mapError(err)
}

// Update renames a device or toggles its active flag.
func (r *DeviceRepository) Update(ctx context.Context, d *model.AuthorizedDevice) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE authorized_devices SET name = $1, is_active = $2, updated_at = NOW()
		 WHERE id = $3`,
		d.Name, d.IsActive, d.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a device.
func (r *DeviceRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM authorized_devices WHERE id = $1`, id)
	return mapError(err)
}
