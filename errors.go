package electosim

import (
	"errors"

	"github.com/edugzlez/electosim/types"
)

// Sentinel errors returned by the System.
var (
	// ErrConfigurationRequired is returned when NewSystem gets a nil district configuration.
	ErrConfigurationRequired = errors.New("district configuration is required")

	// ErrNotConfigurable is returned by SetDistrict/RemoveDistrict when the
	// configuration does not support per-region districts.
	ErrNotConfigurable = errors.New("district configuration does not support per-region districts")

	// ErrInvalidConfig is returned when a Config does not validate.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSystemClosed is returned by mutations after Close.
	ErrSystemClosed = errors.New("system closed")
)

// Errors re-exported from the types package so callers can match them
// without importing it.
var (
	ErrRegionNotFound    = types.ErrRegionNotFound
	ErrCandidacyNotFound = types.ErrCandidacyNotFound
	ErrNotParentable     = types.ErrNotParentable
	ErrNotLeafRegion     = types.ErrNotLeafRegion
	ErrEmptyResults      = types.ErrEmptyResults
	ErrUnknownMethod     = types.ErrUnknownMethod
	ErrInvalidDistrict   = types.ErrInvalidDistrict
)
