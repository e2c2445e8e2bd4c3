package logroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFileName(t *testing.T) {
	date := "2024-10-27"
	tests := []struct {
		name string
		base string
		date *string
		num  uint32
		ext  string
		want string
	}{
		{"no date no ext", "logs/log", nil, 1, "", "logs/log.1"},
		{"with ext", "logs/log", nil, 1, "log", "logs/log.1.log"},
		{"with date and ext", "logs/log", &date, 3, "log", "logs/log.2024-10-27.3.log"},
		{"number defaults to 1", "logs/log", nil, 0, "log", "logs/log.1.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildFileName(tt.base, tt.date, tt.num, tt.ext))
		})
	}
}

func TestIdentifyLogFile_RoundTrip(t *testing.T) {
	date := "2024-10-27"
	name := buildFileName("logs/log", &date, 7, "log")

	got, ok := identifyLogFile(name, "logs/log", "yyyy-MM-dd", "log")
	require.True(t, ok)
	assert.Equal(t, uint32(7), got.FileNumber)
	assert.NotZero(t, got.FileTime)
}

func TestIdentifyLogFile_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		candidate  string
		base       string
		dateFormat string
		ext        string
	}{
		{"wrong base", "other.1.log", "logs/log", "", "log"},
		{"wrong extension", "logs/log.1.json", "logs/log", "", "log"},
		{"missing number segment", "logs/log.log", "logs/log", "", "log"},
		{"extra segment", "logs/log.a.b.1.log", "logs/log", "", "log"},
		{"bad date", "logs/log.not-a-date.1.log", "logs/log", "yyyy-MM-dd", "log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := identifyLogFile(tt.candidate, tt.base, tt.dateFormat, tt.ext)
			assert.False(t, ok)
		})
	}
}

func TestSanitizeFile(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		explicitExt string
		wantBase    string
		wantExt     string
	}{
		{"simple with ext", "logs/app.log", "", "logs/app", "log"},
		{"no ext falls back to log", "logs/app", "", "logs/app", "log"},
		{"trailing separator gets app stem", "logs/", "", "logs/app", "log"},
		{"explicit ext overrides peeled", "logs/app.txt", "log", "logs/app", "log"},
		{"multiple dots strip only the last", "logs/x.log.json", "", "logs/x.log", "json"},
		{"single char suffix falls back to log", "logs/app.x", "", "logs/app", "log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, ext, err := sanitizeFile(tt.file, tt.explicitExt)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestSanitizeFile_EmptyRejected(t *testing.T) {
	_, _, err := sanitizeFile("", "")
	assert.Error(t, err)
}

func TestValidateFileName(t *testing.T) {
	assert.NoError(t, validateFileName("logs/app.log"))
	assert.NoError(t, validateFileName(`C:\logs\app.log`))
	assert.Error(t, validateFileName("logs/a<b.log"))
	assert.Error(t, validateFileName("logs/a:b.log"))
}

func TestValidateDateFormat(t *testing.T) {
	assert.NoError(t, validateDateFormat("yyyy-MM-dd"))
	assert.Error(t, validateDateFormat("yyyy/MM/dd"))
	assert.Error(t, validateDateFormat("yyyy%MM"))
}
