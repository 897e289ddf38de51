package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/semstore/internal/config"
	"github.com/roach88/semstore/internal/ingest"
	"github.com/roach88/semstore/internal/limits"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data, "ignored in json")
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.NotContains(t, buf.String(), "ignored")
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("parse_error", "triple 3: unexpected token", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "parse_error", resp.Error.Code)
	assert.Equal(t, "triple 3: unexpected token", resp.Error.Message)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Success(InsertResult{Inserted: 2}, "✓ Inserted 2 triple(s)"))
	assert.Equal(t, "✓ Inserted 2 triple(s)\n", buf.String())
}

func TestOutputFormatter_TextSuccessWithoutText(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Success("plain", ""))
	assert.Equal(t, "plain\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Error("E004", "owner is required", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E004]: owner is required")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	err := formatter.Error("E203", "schema error", "store.cue:3:2")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E203]: schema error")
	assert.Contains(t, buf.String(), "Details: store.cue:3:2")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		buf := &bytes.Buffer{}
		formatter := &OutputFormatter{Format: "text", Writer: buf}
		formatter.VerboseLog("hidden %d", 1)
		assert.Empty(t, buf.String())
	})

	t.Run("falls back to writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}
		formatter.VerboseLog("shown %d", 1)
		assert.Equal(t, "shown 1\n", buf.String())
	})

	t.Run("uses error writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		errBuf := &bytes.Buffer{}
		formatter := &OutputFormatter{Format: "json", Writer: buf, ErrWriter: errBuf, Verbose: true}
		formatter.VerboseLog("diagnostic")
		assert.Empty(t, buf.String())
		assert.Equal(t, "diagnostic\n", errBuf.String())
	})
}

// TestOutputFormatter_Fail verifies error codes and exit codes per error kind.
func TestOutputFormatter_Fail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantExit int
	}{
		{
			name:     "store error",
			err:      &ingest.UnauthorizedError{Sender: "mallory"},
			wantCode: "unauthorized",
			wantExit: ExitFailure,
		},
		{
			name:     "limit error",
			err:      &limits.LimitExceededError{Kind: limits.KindMaxTripleCount, Ceiling: 1},
			wantCode: "limit_exceeded",
			wantExit: ExitFailure,
		},
		{
			name:     "command error",
			err:      commandError(ErrCodeReadInput, errors.New("no such file")),
			wantCode: ErrCodeReadInput,
			wantExit: ExitCommandError,
		},
		{
			name:     "config error",
			err:      &config.LoadError{Code: config.ErrCodeSchema, Message: "owner: incomplete value"},
			wantCode: config.ErrCodeSchema,
			wantExit: ExitCommandError,
		},
		{
			name:     "unexpected error",
			err:      errors.New("boom"),
			wantCode: ErrCodeGeneric,
			wantExit: ExitCommandError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "json", Writer: buf}

			err := formatter.Fail(tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			assert.ErrorIs(t, err, tt.err)

			var resp CLIResponse
			require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))

	wrapped := WrapExitError(ExitFailure, "insert", errors.New("rejected"))
	assert.Equal(t, "insert: rejected", wrapped.Error())
}

func TestCLIResponse_JSON(t *testing.T) {
	resp := CLIResponse{
		Status: "ok",
		Data:   InsertResult{Inserted: 3},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"inserted":3}}`, string(data))
}
