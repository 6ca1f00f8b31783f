package resize

import "errors"

var (
	ErrUnsupportedContentMode = errors.New("unsupported content mode")
	ErrNoPixelData            = errors.New("bitmap has no pixel data")
	ErrBufferCreationFailed   = errors.New("drawing buffer creation failed")
)
