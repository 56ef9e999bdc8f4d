package buffer

import "testing"

func TestDefaultRecordOptions(t *testing.T) {
	o := defaultRecordOptions()
	if o.capacity != DefaultCapacity || o.usage != StaticDraw {
		t.Errorf("defaults = %+v", o)
	}
}

func TestRecordOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []RecordOption
		want recordOptions
	}{
		{"none", nil, recordOptions{capacity: DefaultCapacity, usage: StaticDraw}},
		{"capacity", []RecordOption{WithCapacity(100)}, recordOptions{capacity: 100, usage: StaticDraw}},
		{"negative capacity", []RecordOption{WithCapacity(-1)}, recordOptions{capacity: 0, usage: StaticDraw}},
		{"usage", []RecordOption{WithUsage(StreamCopy)}, recordOptions{capacity: DefaultCapacity, usage: StreamCopy}},
		{"last wins", []RecordOption{WithUsage(StreamCopy), WithUsage(DynamicRead), WithCapacity(1)}, recordOptions{capacity: 1, usage: DynamicRead}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultRecordOptions()
			for _, opt := range tt.opts {
				opt(&o)
			}
			if o != tt.want {
				t.Errorf("options = %+v, want %+v", o, tt.want)
			}
		})
	}
}
