package safe

import (
	"math"
	"testing"
)

func TestInt64(t *testing.T) {
	tests := []struct {
		name    string
		got     func() (int64, error)
		want    int64
		wantErr bool
	}{
		{name: "uint64 small", got: func() (int64, error) { return Int64(uint64(42)) }, want: 42},
		{name: "uint64 boundary", got: func() (int64, error) { return Int64(uint64(math.MaxInt64)) }, want: math.MaxInt64},
		{name: "uint64 overflow", got: func() (int64, error) { return Int64(uint64(math.MaxInt64) + 1) }, wantErr: true},
		{name: "int negative passes through", got: func() (int64, error) { return Int64(-7) }, want: -7},
		{name: "uint32 max", got: func() (int64, error) { return Int64(uint32(math.MaxUint32)) }, want: math.MaxUint32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.got()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Int64() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Int64() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUint64(t *testing.T) {
	tests := []struct {
		name    string
		got     func() (uint64, error)
		want    uint64
		wantErr bool
	}{
		{name: "int64 positive", got: func() (uint64, error) { return Uint64(int64(99)) }, want: 99},
		{name: "int64 negative", got: func() (uint64, error) { return Uint64(int64(-1)) }, wantErr: true},
		{name: "int32 max", got: func() (uint64, error) { return Uint64(int32(math.MaxInt32)) }, want: math.MaxInt32},
		{name: "uint64 max", got: func() (uint64, error) { return Uint64(uint64(math.MaxUint64)) }, want: math.MaxUint64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.got()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Uint64() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Uint64() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUint8(t *testing.T) {
	tests := []struct {
		name    string
		in      int
		want    uint8
		wantErr bool
	}{
		{name: "stat", in: 75, want: 75},
		{name: "max", in: 255, want: 255},
		{name: "overflow", in: 256, wantErr: true},
		{name: "negative", in: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Uint8(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Uint8() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Uint8() = %d, want %d", got, tt.want)
			}
		})
	}
}
