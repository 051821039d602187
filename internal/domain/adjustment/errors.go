package adjustment

import "errors"

var ErrEmptyName = errors.New("adjustment employee name is required")
