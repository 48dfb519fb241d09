package version

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
}

func TestGetVersion(t *testing.T) {
	tests := []struct {
		name   string
		linked string
		info   *debug.BuildInfo
		ok     bool
		want   string
	}{
		{name: "linked version wins", linked: "v1.2.3", info: &debug.BuildInfo{}, ok: true, want: "v1.2.3"},
		{name: "no build info", ok: false, want: "dev"},
		{
			name: "short revision",
			info: &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}}},
			ok:   true,
			want: "0123456",
		},
		{
			name: "dirty tree",
			info: &debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abcdef0"},
				{Key: "vcs.modified", Value: "true"},
			}},
			ok:   true,
			want: "abcdef0 (dirty)",
		},
		{
			name: "module version without vcs",
			info: &debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}},
			ok:   true,
			want: "v0.3.0",
		},
		{
			name: "devel build",
			info: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			ok:   true,
			want: "dev",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			origVersion := Version
			t.Cleanup(func() { Version = origVersion })
			Version = tc.linked
			stubBuildInfo(t, tc.info, tc.ok)

			if got := GetVersion(); got != tc.want {
				t.Fatalf("GetVersion() = %q, want %q", got, tc.want)
			}
		})
	}
}
