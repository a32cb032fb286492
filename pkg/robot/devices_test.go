package robot

import "testing"

func TestAllSensors(t *testing.T) {
	names := AllSensors()
	if len(names) != NumSensors {
		t.Fatalf("AllSensors returned %d names, want %d", len(names), NumSensors)
	}
	if names[0] != "ps0" || names[7] != "ps7" {
		t.Errorf("AllSensors() = %v, want ps0..ps7", names)
	}
}

func TestAllBoxes(t *testing.T) {
	names := AllBoxes("BOX", 20)
	if len(names) != 20 {
		t.Fatalf("AllBoxes returned %d names, want 20", len(names))
	}
	if names[0] != "BOX01" {
		t.Errorf("AllBoxes()[0] = %s, want BOX01", names[0])
	}
	if names[19] != "BOX20" {
		t.Errorf("AllBoxes()[19] = %s, want BOX20", names[19])
	}
}
