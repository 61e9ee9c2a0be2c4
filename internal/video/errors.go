package video

import "errors"

var ErrValidation = errors.New("validation failed")
