package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Promote   bool
	Alias     bool
	Reconcile bool
	Load      bool
	Convert   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Promote = boolEnv("YDOM_DEBUG_PROMOTE")
	d.Alias = boolEnv("YDOM_DEBUG_ALIAS")
	d.Reconcile = boolEnv("YDOM_DEBUG_RECONCILE")
	d.Load = boolEnv("YDOM_DEBUG_LOAD")
	d.Convert = boolEnv("YDOM_DEBUG_CONVERT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Promote() bool {
	return d.Promote
}
func Alias() bool {
	return d.Alias
}
func Reconcile() bool {
	return d.Reconcile
}
func Load() bool {
	return d.Load
}
func Convert() bool {
	return d.Convert
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(out, "%v\n", v)
		return
	}
	out.Write(d)
}
