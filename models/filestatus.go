package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DecodeError reports a gateway response body that could not be turned into
// a usable file status.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode failed: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FileStatus represents the metadata of one remote path entry.
// Field names match the gateway's JSON exactly.
type FileStatus struct {
	AccessTime       int64  `json:"accessTime"`
	BlockSize        int64  `json:"blockSize"`
	ChildrenNum      int    `json:"childrenNum"`
	FileID           int64  `json:"fileId"`
	Group            string `json:"group"`
	Length           int64  `json:"length"`
	ModificationTime int64  `json:"modificationTime"`
	Owner            string `json:"owner"`
	PathSuffix       string `json:"pathSuffix"`
	Permission       string `json:"permission"`
	Replication      int    `json:"replication"`
	StoragePolicy    int    `json:"storagePolicy"`
	Type             string `json:"type"`
}

// SingleStatus structure for a GETFILESTATUS response
type SingleStatus struct {
	FileStatus FileStatus `json:"FileStatus"`
}

// StatusList structure for the array wrapper inside a directory listing
type StatusList struct {
	FileStatus []FileStatus `json:"FileStatus"`
}

// DirectoryListing structure for a LISTSTATUS response
type DirectoryListing struct {
	FileStatuses StatusList `json:"FileStatuses"`
}

// permission bits tested most-significant first, cycling r,w,x three times.
var permBits = [9]struct {
	mask uint64
	mark byte
}{
	{0x400, 'r'}, {0x200, 'w'}, {0x100, 'x'},
	{0x40, 'r'}, {0x20, 'w'}, {0x10, 'x'},
	{0x4, 'r'}, {0x2, 'w'}, {0x1, 'x'},
}

// PermissionString renders the entry's mode in classic rwxrwxrwx notation.
// The gateway encodes the mode as hexadecimal text, not the octal ls uses,
// so the field must be parsed base 16.
func (fs *FileStatus) PermissionString() string {
	p, err := strconv.ParseUint(fs.Permission, 16, 32)
	if err != nil {
		p = 0
	}

	var b strings.Builder
	if strings.EqualFold(fs.Type, "directory") {
		b.WriteByte('d')
	} else {
		b.WriteByte('-')
	}
	for _, bit := range permBits {
		if p&bit.mask == 0 {
			b.WriteByte('-')
		} else {
			b.WriteByte(bit.mark)
		}
	}
	return b.String()
}

// String dumps every field, one per line, for debug inspection.
func (fs *FileStatus) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nAccessTime = %d", fs.AccessTime)
	fmt.Fprintf(&b, "\nBlockSize = %d", fs.BlockSize)
	fmt.Fprintf(&b, "\nChildrenNum = %d", fs.ChildrenNum)
	fmt.Fprintf(&b, "\nFileId = %d", fs.FileID)
	fmt.Fprintf(&b, "\nGroup = %s", fs.Group)
	fmt.Fprintf(&b, "\nLength = %d", fs.Length)
	fmt.Fprintf(&b, "\nModificationTime = %d", fs.ModificationTime)
	fmt.Fprintf(&b, "\nOwner = %s", fs.Owner)
	fmt.Fprintf(&b, "\nPathSuffix = %s", fs.PathSuffix)
	fmt.Fprintf(&b, "\nPermission = %s", fs.Permission)
	fmt.Fprintf(&b, "\nReplication = %d", fs.Replication)
	fmt.Fprintf(&b, "\nStoragePolicy = %d", fs.StoragePolicy)
	fmt.Fprintf(&b, "\nType = %s", fs.Type)
	return b.String()
}

func (fs *FileStatus) validate() error {
	if fs.Type == "" {
		return &DecodeError{Reason: "file status missing type"}
	}
	if fs.Permission != "" {
		if _, err := strconv.ParseUint(fs.Permission, 16, 32); err != nil {
			return &DecodeError{Reason: fmt.Sprintf("permission %q is not a hex mode", fs.Permission), Err: err}
		}
	}
	return nil
}

func emptyBody(body string) bool {
	trimmed := strings.TrimSpace(body)
	return trimmed == "" || trimmed == "null"
}

// DecodeSingleStatus parses a GETFILESTATUS response body. An empty or null
// body yields no status and no error.
func DecodeSingleStatus(body string) (*FileStatus, error) {
	if emptyBody(body) {
		return nil, nil
	}

	var wrapper struct {
		FileStatus *FileStatus `json:"FileStatus"`
	}
	if err := json.Unmarshal([]byte(body), &wrapper); err != nil {
		return nil, &DecodeError{Reason: "malformed single status body", Err: err}
	}
	if wrapper.FileStatus == nil {
		return nil, nil
	}
	if err := wrapper.FileStatus.validate(); err != nil {
		return nil, err
	}
	return wrapper.FileStatus, nil
}

// DecodeListing parses a LISTSTATUS response body. A missing or empty
// FileStatuses collection yields no entries, not an error.
func DecodeListing(body string) ([]FileStatus, error) {
	if emptyBody(body) {
		return nil, nil
	}

	var listing DirectoryListing
	if err := json.Unmarshal([]byte(body), &listing); err != nil {
		return nil, &DecodeError{Reason: "malformed directory listing body", Err: err}
	}
	for i := range listing.FileStatuses.FileStatus {
		if err := listing.FileStatuses.FileStatus[i].validate(); err != nil {
			return nil, err
		}
	}
	return listing.FileStatuses.FileStatus, nil
}
