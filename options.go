package buffer

// RecordOption configures a RecordBuffer during creation.
//
// Example:
//
//	// 16 records, STATIC_DRAW
//	rb := buffer.NewRecordBuffer(layout)
//
//	// Preallocate 1024 records of frequently rewritten data
//	rb := buffer.NewRecordBuffer(layout,
//	    buffer.WithCapacity(1024),
//	    buffer.WithUsage(buffer.DynamicDraw))
type RecordOption func(*recordOptions)

// recordOptions holds optional configuration for RecordBuffer creation.
type recordOptions struct {
	capacity int
	usage    Usage
}

// defaultRecordOptions returns the default record buffer options.
func defaultRecordOptions() recordOptions {
	return recordOptions{
		capacity: DefaultCapacity,
		usage:    StaticDraw,
	}
}

// WithCapacity sets the initial capacity in records.
// Negative values are treated as 0.
func WithCapacity(records int) RecordOption {
	return func(o *recordOptions) {
		o.capacity = max(records, 0)
	}
}

// WithUsage sets the usage hint forwarded to the device layer.
func WithUsage(u Usage) RecordOption {
	return func(o *recordOptions) {
		o.usage = u
	}
}
