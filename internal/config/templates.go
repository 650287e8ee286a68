package config

import (
	"fmt"
	"os"
)

func Template() string {
	return dumpTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(dumpTemplate), 0o600)
}

const dumpTemplate = `# recdump configuration
log_level = "info"

# warn about unknown sids in the chart sub-record window (0x1000-0x1070)
diagnostics = false

# 0 reads the whole stream
max_records = 0
max_payload_bytes = 65535

# opaque | all | dump | none
# dump renders opaque payloads as an offset-prefixed multi-line listing
render = "opaque"

# re-serialize every record and compare against the input bytes
verify_roundtrip = true

# write prometheus counters here after the run, empty disables
metrics_out = ""
`
