package strictjson

import (
	"bytes"
	"encoding/json"
	"sync"
)

// Driver is the trusted native JSON implementation the package delegates to
// for rendering and reading text. The default implementation is based on
// encoding/json and may be swapped with SetDriver; the driver/... packages
// provide go-json, json-iterator and sonic backed drivers.
//
// Drivers never see replacers or conversion hooks: those are resolved before
// the value is handed over.
type Driver interface {
	Marshal(v any) ([]byte, error)
	// Indent reformats compact JSON text with the given indent string.
	Indent(dst *bytes.Buffer, src []byte, prefix, indent string) error
	Unmarshal(data []byte, v any) error
	Name() string
}

var (
	driverMu      sync.RWMutex
	currentDriver Driver = stdDriver{}
)

// SetDriver replaces the global driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the default encoding/json-backed driver.
func UseDefaultDriver() {
	driverMu.Lock()
	currentDriver = stdDriver{}
	driverMu.Unlock()
}

// CurrentDriver returns the driver in use.
func CurrentDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}

// StdDriver returns the encoding/json-backed driver.
func StdDriver() Driver { return stdDriver{} }

// stdDriver wraps the encoding/json implementation.
type stdDriver struct{}

func (stdDriver) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (stdDriver) Indent(dst *bytes.Buffer, src []byte, prefix, indent string) error {
	return json.Indent(dst, src, prefix, indent)
}
func (stdDriver) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (stdDriver) Name() string                       { return "encoding/json" }
