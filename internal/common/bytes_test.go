package common

import "testing"

func TestWipeBytes_ZerosBuffer(t *testing.T) {
	buf := []byte("secret")
	WipeBytes(buf)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: %v", i, b)
		}
	}
}

func TestWipeBytes_NilSafe(t *testing.T) {
	WipeBytes(nil)
}
