package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionString_AllModes(t *testing.T) {
	masks := [9]uint64{0x400, 0x200, 0x100, 0x40, 0x20, 0x10, 0x4, 0x2, 0x1}
	marks := [9]byte{'r', 'w', 'x', 'r', 'w', 'x', 'r', 'w', 'x'}

	for p := uint64(0); p <= 0x1FF; p++ {
		fs := FileStatus{Type: "FILE", Permission: fmt.Sprintf("%x", p)}
		got := fs.PermissionString()
		require.Len(t, got, 10)
		assert.Equal(t, byte('-'), got[0])

		for i := 0; i < 9; i++ {
			want := byte('-')
			if p&masks[i] != 0 {
				want = marks[i]
			}
			assert.Equal(t, string(want), string(got[i+1]), "mode %x position %d", p, i)
		}
	}
}

func TestPermissionString_HexNotOctal(t *testing.T) {
	// 0x24 sets the 0x20 and 0x4 bits; an octal reading of "24" would not.
	fs := FileStatus{Type: "FILE", Permission: "24"}
	assert.Equal(t, "-----w-r--", fs.PermissionString())

	fs = FileStatus{Type: "DIRECTORY", Permission: "1ff"}
	assert.Equal(t, "drwxrwxrwx", fs.PermissionString())
}

func TestPermissionString_DirectoryFlagIgnoresCase(t *testing.T) {
	for _, typ := range []string{"DIRECTORY", "directory", "Directory"} {
		fs := FileStatus{Type: typ, Permission: "1ed"}
		assert.Equal(t, byte('d'), fs.PermissionString()[0], "type %q", typ)
	}

	fs := FileStatus{Type: "FILE", Permission: "1ed"}
	assert.Equal(t, byte('-'), fs.PermissionString()[0])
}

func TestDecodeSingleStatus(t *testing.T) {
	body := `{"FileStatus":{"accessTime":0,"blockSize":0,"childrenNum":2,"fileId":16385,
		"group":"supergroup","length":0,"modificationTime":1440165599033,"owner":"hdfs",
		"pathSuffix":"","permission":"1ed","replication":0,"storagePolicy":0,"type":"DIRECTORY"}}`

	status, err := DecodeSingleStatus(body)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, "DIRECTORY", status.Type)
	assert.Equal(t, "supergroup", status.Group)
	assert.Equal(t, int64(1440165599033), status.ModificationTime)
	assert.Empty(t, status.PathSuffix)
}

func TestDecodeSingleStatus_EmptyBodies(t *testing.T) {
	for _, body := range []string{"", "  ", "null", "{}"} {
		status, err := DecodeSingleStatus(body)
		require.NoError(t, err, "body %q", body)
		assert.Nil(t, status, "body %q", body)
	}
}

func TestDecodeSingleStatus_Malformed(t *testing.T) {
	var decodeErr *DecodeError

	_, err := DecodeSingleStatus(`{"FileStatus":`)
	require.ErrorAs(t, err, &decodeErr)

	_, err = DecodeSingleStatus(`{"FileStatus":{"pathSuffix":"x"}}`)
	require.ErrorAs(t, err, &decodeErr, "missing type must fail")

	_, err = DecodeSingleStatus(`{"FileStatus":{"type":"FILE","permission":"zzz"}}`)
	require.ErrorAs(t, err, &decodeErr, "non-hex permission must fail")
}

func TestDecodeListing(t *testing.T) {
	body := `{"FileStatuses":{"FileStatus":[
		{"pathSuffix":"app-logs","permission":"1ed","type":"DIRECTORY","owner":"yarn","group":"hadoop"},
		{"pathSuffix":"data.csv","permission":"1a4","type":"FILE","owner":"hdfs","group":"hadoop","length":2048,"replication":3}
	]}}`

	entries, err := DecodeListing(body)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "app-logs", entries[0].PathSuffix)
	assert.Equal(t, "FILE", entries[1].Type)
	assert.Equal(t, 3, entries[1].Replication)
	assert.Equal(t, int64(2048), entries[1].Length)
}

func TestDecodeListing_NoEntries(t *testing.T) {
	for _, body := range []string{"", "null", "{}", `{"FileStatuses":{}}`, `{"FileStatuses":{"FileStatus":[]}}`} {
		entries, err := DecodeListing(body)
		require.NoError(t, err, "body %q", body)
		assert.Empty(t, entries, "body %q", body)
	}
}

func TestDecodeListing_Malformed(t *testing.T) {
	var decodeErr *DecodeError

	_, err := DecodeListing(`not json`)
	require.ErrorAs(t, err, &decodeErr)

	_, err = DecodeListing(`{"FileStatuses":{"FileStatus":[{"pathSuffix":"x"}]}}`)
	require.ErrorAs(t, err, &decodeErr, "entry without type must fail")
}

func TestFileStatusString(t *testing.T) {
	fs := FileStatus{Owner: "hdfs", Group: "supergroup", Type: "FILE", Length: 42}
	dump := fs.String()
	assert.Contains(t, dump, "Owner = hdfs")
	assert.Contains(t, dump, "Group = supergroup")
	assert.Contains(t, dump, "Length = 42")
	assert.Contains(t, dump, "Type = FILE")
}
