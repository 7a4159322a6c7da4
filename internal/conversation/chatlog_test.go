package conversation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempChatLog(t *testing.T) *ChatLog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatlog.json")
	log, err := NewChatLog(path)
	require.NoError(t, err)
	return log
}

func TestChatLogCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatlog.json")
	_, err := NewChatLog(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))
}

func TestChatLogSaveAndGet(t *testing.T) {
	log := tempChatLog(t)

	ctx := Fresh("session-1")
	ctx.LastProgression = []string{"I", "vi", "IV", "V"}
	ctx.LastEmotion = "Joy"
	ctx.LastStyle = "Pop"
	ctx.LastMode = "Ionian"
	require.NoError(t, log.Save("session-1", ctx))

	got := log.Get("session-1")
	require.NotNil(t, got)
	assert.Equal(t, []string{"I", "vi", "IV", "V"}, got.LastProgression)
	assert.Equal(t, "Joy", got.LastEmotion)
	assert.Equal(t, "Pop", got.LastStyle)
	assert.Equal(t, "Ionian", got.LastMode)
	assert.Equal(t, "session-1", got.SessionID)
}

func TestChatLogGetMissingSession(t *testing.T) {
	log := tempChatLog(t)
	assert.Nil(t, log.Get("unknown"))
}

func TestChatLogSaveNilContext(t *testing.T) {
	log := tempChatLog(t)
	assert.NoError(t, log.Save("session-1", nil))
	assert.Nil(t, log.Get("session-1"))
}

func TestChatLogMultipleSessions(t *testing.T) {
	log := tempChatLog(t)

	a := Fresh("a")
	a.LastEmotion = "Joy"
	b := Fresh("b")
	b.LastEmotion = "Sadness"

	require.NoError(t, log.Save("a", a))
	require.NoError(t, log.Save("b", b))

	assert.Equal(t, "Joy", log.Get("a").LastEmotion)
	assert.Equal(t, "Sadness", log.Get("b").LastEmotion)
}

func TestChatLogTimestampRoundTrip(t *testing.T) {
	log := tempChatLog(t)

	ctx := Fresh("s")
	ctx.Timestamp = time.Unix(1700000000, 0)
	require.NoError(t, log.Save("s", ctx))

	got := log.Get("s")
	require.NotNil(t, got)
	assert.Equal(t, int64(1700000000), got.Timestamp.Unix())
}
