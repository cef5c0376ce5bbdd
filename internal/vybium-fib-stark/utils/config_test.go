package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/core"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 1023, cfg.TraceLength)
	assert.Equal(t, 8192, cfg.EvaluationDomain)
	assert.Equal(t, 10, cfg.FRILayers)
	assert.Equal(t, core.HashSHA256, cfg.HashFunction)
}

func TestConfigRejectsWrongTraceLength(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceLength = 100
	assert.Error(t, cfg.Validate())
}

func TestConfigRejectsNonPowerOfTwoDomain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EvaluationDomain = 8000
	assert.Error(t, cfg.Validate())
}

func TestConfigRejectsTooSmallDomain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EvaluationDomain = 1024
	assert.Error(t, cfg.Validate())
}

func TestConfigRejectsUnknownHashFunction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HashFunction = "md5"
	assert.Error(t, cfg.Validate())
}

func TestConfigCloneIsIndependent(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.FRILayers = 5
	assert.Equal(t, 10, cfg.FRILayers)
	assert.Equal(t, 5, clone.FRILayers)
}

func TestConfigFluentSetters(t *testing.T) {
	cfg := DefaultConfig().WithFRILayers(10).WithHashFunction(core.HashSHA3)
	assert.Equal(t, core.HashSHA3, cfg.HashFunction)
	assert.NoError(t, cfg.Validate())
}
