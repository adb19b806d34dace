//go:build linux

package git

import (
	"syscall"
	"time"

	"github.com/ngrigoriev/wyag-go/ginternals"
)

func init() {
	fillSystemInfo = func(e *ginternals.IndexEntry, sys interface{}) {
		st, ok := sys.(*syscall.Stat_t)
		if !ok {
			return
		}
		e.CTime = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
		e.Dev = uint32(st.Dev) //nolint:gosec // a device number fits in a uint32 in practice
		e.Ino = uint32(st.Ino) //nolint:gosec // same as above, for the inode
		e.UID = st.Uid
		e.GID = st.Gid
	}
}
