package tilegrid

import "testing"

func TestColorVector(t *testing.T) {
	got := colorVector(RGB{255, 0, 51}, 102)
	want := [4]float32{1, 0, 0.2, 0.4}
	for i := range got {
		if d := got[i] - want[i]; d > 1e-6 || d < -1e-6 {
			t.Errorf("colorVector[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOpacityScaled(t *testing.T) {
	tests := []struct {
		c    RGB
		o    uint8
		want RGB
	}{
		{RGB{255, 255, 255}, 255, RGB{255, 255, 255}},
		{RGB{255, 128, 10}, 0, RGB{}},
		{RGB{200, 100, 50}, 128, RGB{100, 50, 25}},
	}
	for _, tt := range tests {
		if got := opacityScaled(tt.c, tt.o); got != tt.want {
			t.Errorf("opacityScaled(%+v, %d) = %+v, want %+v", tt.c, tt.o, got, tt.want)
		}
	}
}

func TestMultiplyChannel(t *testing.T) {
	tests := []struct{ a, b, want uint8 }{
		{255, 255, 255},
		{255, 0, 0},
		{128, 255, 128},
		{128, 128, 64},
		{200, 100, 78},
	}
	for _, tt := range tests {
		if got := multiplyChannel(tt.a, tt.b); got != tt.want {
			t.Errorf("multiplyChannel(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestUnitToByte(t *testing.T) {
	tests := []struct {
		v    float32
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{127.4, 127},
		{127.5, 128},
		{255, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := unitToByte(tt.v); got != tt.want {
			t.Errorf("unitToByte(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}
