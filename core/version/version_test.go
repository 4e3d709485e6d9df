package version

import (
	"runtime/debug"
	"testing"

	"github.com/emvtools/bertlv/core/testenv"
)

func TestFromBuildSettings(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	v := fromBuildSettings([]debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123456789abcdef0123456789abcdef01234567"},
		{Key: "vcs.time", Value: "2024-03-01T12:30:45Z"},
		{Key: "vcs.modified", Value: "true"},
	})
	assert.Equal("v0.0.0-20240301123045-0123456789ab-dirty", v.String())
	assert.True(v.Dirty)

	v = fromBuildSettings([]debug.BuildSetting{{Key: "vcs", Value: "hg"}})
	assert.Equal(V, v)
}
