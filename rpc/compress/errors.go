package compress

import "errors"

var (
	// ErrCorrupt indicates a chunk the codec rejected or whose decoded size
	// disagrees with its header. The message stream cannot be recovered.
	ErrCorrupt = errors.New("compress: corrupt chunk")

	// ErrTruncated indicates a header that claims more bytes than the message holds.
	ErrTruncated = errors.New("compress: truncated message")

	// ErrStreamReset indicates the codec failed to reset its stream state.
	ErrStreamReset = errors.New("compress: failed to reset stream state")

	// ErrHeadSpace indicates a negative head space reservation.
	ErrHeadSpace = errors.New("compress: negative head space")

	// ErrUnknownCodec indicates a codec name with no registered implementation.
	ErrUnknownCodec = errors.New("compress: unknown codec")
)
