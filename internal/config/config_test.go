package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Barritosaurus/schedsim/internal/process"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(2), cfg.Quantum)
	assert.Equal(t, 20, cfg.MaxProcesses)
	assert.Equal(t, int64(1_000_000), cfg.MaxTime)
	assert.True(t, cfg.IdleJump)
	assert.Equal(t, ":9095", cfg.Server.Addr)
	assert.Empty(t, cfg.Store.Path)

	policies, err := cfg.SchedulingPolicies()
	require.NoError(t, err)
	assert.Equal(t, scheduler.Policies(), policies)
	assert.Len(t, cfg.SchedulerOptions(), 3)
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, cfg Config)
		wantErr error
	}{
		{
			name: "overrides keep unspecified defaults",
			yaml: `
quantum: 4
policies: [rr, srtf]
log:
  level: debug
server:
  read_timeout: 3s
store:
  path: runs.db
`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, int64(4), cfg.Quantum)
				assert.Equal(t, 20, cfg.MaxProcesses)
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.Equal(t, "text", cfg.Log.Format)
				assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "runs.db", cfg.Store.Path)
				policies, err := cfg.SchedulingPolicies()
				require.NoError(t, err)
				assert.Equal(t, []scheduler.Policy{scheduler.RoundRobin, scheduler.SRTF}, policies)
			},
		},
		{
			name: "all expands",
			yaml: "policies: [all]\nidle_jump: false\n",
			check: func(t *testing.T, cfg Config) {
				assert.False(t, cfg.IdleJump)
				policies, err := cfg.SchedulingPolicies()
				require.NoError(t, err)
				assert.Len(t, policies, 6)
			},
		},
		{name: "zero quantum", yaml: "quantum: 0\n", wantErr: process.ErrInvalidParameter},
		{name: "negative capacity", yaml: "max_processes: -1\n", wantErr: process.ErrInvalidParameter},
		{name: "negative max time", yaml: "max_time: -1\n", wantErr: process.ErrInvalidParameter},
		{name: "unknown policy", yaml: "policies: [lottery]\n", wantErr: process.ErrInvalidParameter},
		{name: "empty policies", yaml: "policies: []\n", wantErr: process.ErrInvalidParameter},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte("quantum: [1, 2"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "schedsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quantum: 7\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Quantum)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSchedulerOptions_MaxTime(t *testing.T) {
	t.Parallel()
	cfg, err := Parse([]byte("max_time: 10\n"))
	require.NoError(t, err)

	set := process.FromProcesses(process.New("A", 0, 5, 1), process.New("B", 8, 3, 1))
	_, err = scheduler.Run(scheduler.FCFS, set, cfg.SchedulerOptions()...)
	assert.ErrorIs(t, err, process.ErrInvalidParameter)

	cfg.MaxTime = 0
	_, err = scheduler.Run(scheduler.FCFS, set, cfg.SchedulerOptions()...)
	assert.NoError(t, err)
}
