package buffer

// Descriptor is the view of a buffer that the device layer consumes: the
// raw backing bytes, the length in use, and enough metadata to create and
// refresh a device buffer.
//
// Version changes every time content or size changes, so a consumer that
// remembers the version it uploaded can detect stale copies.
type Descriptor interface {
	// Bytes returns the whole backing region, which may be longer than
	// ByteLength.
	Bytes() []byte
	// ByteLength returns the number of bytes in use.
	ByteLength() int
	Usage() Usage
	Target() Target
	Version() uint64
}

var (
	_ Descriptor = (*FaceBuffer)(nil)
	_ Descriptor = (*RecordBuffer)(nil)
)
