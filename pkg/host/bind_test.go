package host

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gwillem/boxbot/pkg/robot"
)

func testConfig(boxCount int) *robot.Config {
	cfg := &robot.Config{BoxCount: boxCount}
	cfg.Defaults()
	return cfg
}

func TestBind_AllDevices(t *testing.T) {
	h := newFakeHost("BOX01", "BOX02", "BOX03")
	h.velocity[9] = 3 // left wheel was moving

	b, err := Bind(h, testConfig(3), nil)
	require.NoError(t, err)

	for i, tag := range b.Sensors {
		assert.Equal(t, DeviceTag(i+1), tag)
		assert.Equal(t, 64, h.enabled[tag], "sensor ps%d enabled at tick rate", i)
	}
	assert.Equal(t, 0.0, h.velocity[b.Left])
	assert.Equal(t, 0.0, h.velocity[b.Right])
	assert.Equal(t, []string{"BOX01", "BOX02", "BOX03"}, b.Boxes.Names())
	assert.Empty(t, b.Missing)
}

func TestBind_MissingSensorIsFatal(t *testing.T) {
	h := newFakeHost()
	delete(h.devices, "ps3")

	_, err := Bind(h, testConfig(0), nil)
	require.ErrorIs(t, err, ErrMissingDevice)
	assert.Contains(t, err.Error(), "ps3")
}

func TestBind_MissingMotorIsFatal(t *testing.T) {
	h := newFakeHost()
	delete(h.devices, robot.RightWheel)

	_, err := Bind(h, testConfig(0), nil)
	require.ErrorIs(t, err, ErrMissingDevice)
}

func TestBind_MissingBoxIsExcluded(t *testing.T) {
	h := newFakeHost("BOX01", "BOX03")
	var buf bytes.Buffer
	logger := log.New(&buf)

	b, err := Bind(h, testConfig(3), logger)
	require.NoError(t, err)

	assert.Equal(t, []string{"BOX01", "BOX03"}, b.Boxes.Names())
	assert.Equal(t, []string{"BOX02"}, b.Missing)
	assert.Contains(t, buf.String(), "cannot access box")
	assert.Contains(t, buf.String(), "BOX02")
}

func TestBindings_ReadAndDrive(t *testing.T) {
	h := newFakeHost()
	b, err := Bind(h, testConfig(0), nil)
	require.NoError(t, err)

	h.values[b.Sensors[0]] = 1200
	h.values[b.Sensors[7]] = 80

	raw := b.ReadSensors(h)
	assert.Equal(t, 1200.0, raw[0])
	assert.Equal(t, 80.0, raw[7])

	b.Drive(h, -6.28, 6.28)
	assert.Equal(t, -6.28, h.velocity[b.Left])
	assert.Equal(t, 6.28, h.velocity[b.Right])
}

func TestBoxes_SnapshotAndDisplacement(t *testing.T) {
	h := newFakeHost("BOX01", "BOX02", "BOX03", "BOX04", "BOX05")
	b, err := Bind(h, testConfig(5), nil)
	require.NoError(t, err)

	box5 := b.Boxes[4].Ref
	h.positions[box5] = r3.Vec{X: 1.0, Y: 0.2, Z: 3.0}

	before := b.Boxes.Snapshot(h)
	assert.Equal(t, r3.Vec{X: 1.0, Y: 0.2, Z: 3.0}, before[4].Position)
	assert.Zero(t, b.Boxes[4].Position, "snapshot must not mutate the bound set")

	after := b.Boxes.Snapshot(h)
	assert.False(t, AnyDisplaced(before, after))

	h.positions[box5] = r3.Vec{X: 1.0, Y: 0.2, Z: 3.05}
	after = b.Boxes.Snapshot(h)
	moved, box := FirstDisplaced(before, after)
	assert.True(t, moved)
	assert.Equal(t, "BOX05", box.Name)
	assert.Equal(t, 3.05, box.Position.Z)
}

func TestAnyDisplaced_IgnoresUnmatchedBoxes(t *testing.T) {
	before := Boxes{{Name: "BOX01", Position: r3.Vec{X: 1}}}
	after := Boxes{{Name: "BOX02", Position: r3.Vec{X: 5}}}

	assert.False(t, AnyDisplaced(before, after))
	assert.False(t, AnyDisplaced(nil, after))
}
