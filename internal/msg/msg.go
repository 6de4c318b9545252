// Package msg reads the send time out of Outlook .msg files.
//
// A .msg file is an OLE compound container (MS-CFB) holding MAPI property
// streams. The send time lives in the root property stream as
// PidTagClientSubmitTime; older exports sometimes only carry it in the
// transport headers, so the RFC 5322 Date field is tried as a last resort.
package msg

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrNotCompound means the file is not an OLE compound container.
	ErrNotCompound = errors.New("not an OLE compound file")

	// ErrNoSendTime means the container holds no readable send time.
	ErrNoSendTime = errors.New("no send time in message")
)

// MAPI property tags, (id << 16) | type. PT_SYSTIME is 0x0040.
const (
	tagClientSubmitTime    = 0x00390040
	tagMessageDeliveryTime = 0x0E060040
)

const (
	propertiesStream     = "__properties_version1.0"
	headersStreamUnicode = "__substg1.0_007D001F"
	headersStreamANSI    = "__substg1.0_007D001E"

	// The root property stream starts with a 32 byte header before the
	// fixed 16 byte property records.
	rootPropertiesHeader = 32
	propertyRecordSize   = 16
)

// ReadSendTime extracts the originating send time from a .msg file.
// Preference order: client submit time, message delivery time, transport
// headers Date field. Returns ErrNotCompound or ErrNoSendTime (wrapped)
// when the file cannot supply one.
func ReadSendTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNotCompound, err)
	}

	var props, headers []byte
	var headersUTF16 bool

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		// Only the message's own streams; recipient and attachment
		// storages repeat the same names one level down.
		if len(entry.Path) != 0 {
			continue
		}
		switch entry.Name {
		case propertiesStream:
			props, _ = io.ReadAll(entry)
		case headersStreamUnicode:
			headers, _ = io.ReadAll(entry)
			headersUTF16 = true
		case headersStreamANSI:
			if headers == nil {
				headers, _ = io.ReadAll(entry)
			}
		}
	}

	if t, ok := submitTime(props); ok {
		return t, nil
	}
	if t, ok := headerDate(headers, headersUTF16); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s", ErrNoSendTime, path)
}

// submitTime scans the fixed-length records of the root property stream
// for a PT_SYSTIME send time.
func submitTime(props []byte) (time.Time, bool) {
	if len(props) < rootPropertiesHeader+propertyRecordSize {
		return time.Time{}, false
	}

	var submit, delivery uint64
	for off := rootPropertiesHeader; off+propertyRecordSize <= len(props); off += propertyRecordSize {
		tag := binary.LittleEndian.Uint32(props[off:])
		switch tag {
		case tagClientSubmitTime:
			submit = binary.LittleEndian.Uint64(props[off+8:])
		case tagMessageDeliveryTime:
			delivery = binary.LittleEndian.Uint64(props[off+8:])
		}
	}

	if submit != 0 {
		return filetimeToTime(submit), true
	}
	if delivery != 0 {
		return filetimeToTime(delivery), true
	}
	return time.Time{}, false
}

// headerDate pulls the Date field out of the transport headers stream.
func headerDate(raw []byte, utf16 bool) (time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, false
	}

	text := string(raw)
	if utf16 {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		decoded, err := dec.Bytes(raw)
		if err != nil {
			return time.Time{}, false
		}
		text = string(decoded)
	}
	text = strings.TrimPrefix(text, "\ufeff")

	for _, line := range unfoldHeaders(text) {
		if len(line) < 5 || !strings.EqualFold(line[:5], "Date:") {
			continue
		}
		t, err := mail.ParseDate(strings.TrimSpace(line[5:]))
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// unfoldHeaders joins RFC 5322 continuation lines onto their parent line.
func unfoldHeaders(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r\x00")
		if line == "" {
			break // end of header block
		}
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += " " + strings.TrimSpace(line)
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// filetimeToTime converts a Windows FILETIME (100ns intervals since
// 1601-01-01 UTC) to a time.Time.
func filetimeToTime(ft uint64) time.Time {
	const windowsToUnix = 116444736000000000
	return time.Unix(0, (int64(ft)-windowsToUnix)*100).UTC()
}
