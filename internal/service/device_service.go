package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

// DeviceStore is the persistence surface for attendance hardware.
// *repository.DeviceRepository satisfies it.
type DeviceStore interface {
	GetByDeviceID(ctx context.Context, deviceID string) (*model.AuthorizedDevice, error)
	List(ctx context.Context) ([]model.AuthorizedDevice, error)
	Create(ctx context.Context, d *model.AuthorizedDevice) error
	Update(ctx context.Context, d *model.AuthorizedDevice) error
	Delete(ctx context.Context, id int) error
}

// DeviceService manages the registry of hardware allowed to mark attendance.
type DeviceService struct {
	devices DeviceStore
	log     zerolog.Logger
}

// NewDeviceService creates a new DeviceService.
func NewDeviceService(devices DeviceStore, log zerolog.Logger) *DeviceService {
	return &DeviceService{
		devices: devices,
		log:     log.With().Str("component", "device_service").Logger(),
	}
}

// List returns every registered device.
func (s *DeviceService) List(ctx context.Context) ([]model.AuthorizedDevice, error) {
	return s.devices.List(ctx)
}

// Register adds a device. When no device token is supplied one is generated,
// so deployments can mint credentials server-side.
func (s *DeviceService) Register(ctx context.Context, req model.CreateDeviceRequest) (*model.AuthorizedDevice, error) {
	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = uuid.New().String()
	}

	d := &model.AuthorizedDevice{
		DeviceID: deviceID,
		Name:     req.Name,
		IsActive: true,
	}
	if err := s.devices.Create(ctx, d); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateRecord
		}
		return nil, err
	}
	s.log.Info().Str("device_id", d.DeviceID).Msg("device registered")
	return d, nil
}

// Update changes a device's label or active flag.
func (s *DeviceService) Update(ctx context.Context, id int, req model.UpdateDeviceRequest) error {
	d := &model.AuthorizedDevice{
		ID:       id,
		Name:     req.Name,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := s.devices.Update(ctx, d); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

// Remove deletes a device from the registry.
func (s *DeviceService) Remove(ctx context.Context, id int) error {
	if err := s.devices.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}
