package domain

import "github.com/m04kA/yakidesk/pkg/types"

// DateFormat is the wire format of booking dates
const DateFormat = types.DateLayout

// Validation limits
const (
	MaxDeskIDLength    = 64
	MaxNameLength      = 200
	MaxEmailLength     = 320
	MaxAvatarURLLength = 2048
)
