package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/boxbot/pkg/robot"
)

func TestLoadConfig_FallsBackToDefaults(t *testing.T) {
	opts.Config = filepath.Join(t.TempDir(), "missing.json")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, robot.DefaultConfig(), cfg)
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	opts.Config = filepath.Join(t.TempDir(), "boxbot.json")
	require.NoError(t, (&robot.Config{TickMs: 32, BoxCount: 4}).SaveTo(opts.Config))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.TickMs)
	assert.Equal(t, 4, cfg.BoxCount)
	assert.Equal(t, robot.DefaultWheelScale, cfg.WheelScale)
}

func TestLoadLayout_Precedence(t *testing.T) {
	dir := t.TempDir()
	flagPath := filepath.Join(dir, "flag.yaml")
	cfgPath := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(flagPath, []byte("width: 2\ndepth: 2\n"), 0644))
	require.NoError(t, os.WriteFile(cfgPath, []byte("width: 3\ndepth: 3\n"), 0644))

	cfg := &robot.Config{Arena: cfgPath}

	l, err := loadLayout(flagPath, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2.0, l.Width)

	l, err = loadLayout("", cfg)
	require.NoError(t, err)
	assert.Equal(t, 3.0, l.Width)

	l, err = loadLayout("", &robot.Config{})
	require.NoError(t, err)
	assert.Len(t, l.Boxes, robot.MaxBoxes)
}

func TestSetupValidators(t *testing.T) {
	assert.NoError(t, positiveInt("64"))
	assert.Error(t, positiveInt("0"))
	assert.Error(t, positiveInt("abc"))

	assert.NoError(t, positiveFloat("6.28"))
	assert.Error(t, positiveFloat("-1"))

	assert.NoError(t, nonEmpty("BOX"))
	assert.Error(t, nonEmpty(""))

	assert.NoError(t, boxCount("20"))
	assert.Error(t, boxCount("21"))
	assert.Error(t, boxCount("0"))
}
