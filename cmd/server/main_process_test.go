package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

const helperModeEnv = "MERCHANT_VERIFY_HELPER_MODE"

// unreachableDB points the pool at a closed port so the startup ping fails fast.
var unreachableDB = []string{
	"DB_HOST=127.0.0.1",
	"DB_PORT=1",
	"DB_USER=postgres",
	"DB_PASSWORD=postgres",
	"DB_NAME=merchant_verify",
	"DB_SSLMODE=disable",
	"DB_AUTO_MIGRATE=false",
	"JOB_PENDING_SCORING_ENABLED=false",
}

func TestMainProcess_HelperModes(t *testing.T) {
	if os.Getenv(helperModeEnv) != "" {
		main()
		return
	}

	redisSrv := miniredis.RunT(t)

	cases := []struct {
		name string
		env  []string
	}{
		{
			name: "redis unreachable",
			env:  []string{"SERVER_ENV=development", "REDIS_URL=redis://127.0.0.1:0"},
		},
		{
			name: "invalid listen port after setup",
			env: append([]string{
				"SERVER_ENV=development",
				"SERVER_PORT=invalid-port",
				"REDIS_URL=redis://" + redisSrv.Addr(),
			}, unreachableDB...),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestMainProcess_HelperModes$")
			cmd.Env = append(append(os.Environ(), helperModeEnv+"="+tc.name), tc.env...)
			require.Error(t, cmd.Run(), "helper process should exit non-zero")
		})
	}
}
