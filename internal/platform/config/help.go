// internal/platform/config/help.go
package config

import (
	"fmt"
	"os"
	"runtime"
)

const helpText = `
smsdedup - SMS/MMS Backup Deduplicator

USAGE:
  smsdedup -i <backup.xml> [options]
  smsdedup <backup.xml> [<backup2.xml> ...] [options]

CORE OPTIONS:
  -i, --input string       Backup XML file to deduplicate (repeatable)
  -o, --output string      Deduplicated XML output (default: <input>_deduplicated.xml)
  -l, --log string         Removal log file (default: <input>_deduplication.log)

MATCHING OPTIONS:
  --default-country-code string   Country prefix assumed for bare numbers (default: "+1")
  --ignore-date-milliseconds      Treat second- and millisecond-precision dates as equal
  --ignore-whitespace-differences Collapse whitespace runs when comparing bodies
  --aggressive                    Match on date and body/data only (cross-type)

RUNTIME OPTIONS:
  -w, --workers int        Concurrent workers for group resolution (default: 4)
  -q, --quiet              Suppress the terminal summary table
  --json                   Emit a JSON run summary to stdout
  -c, --config string      YAML configuration file

INFO:
  -v, --version            Print version information and exit
  -h, --help               Show this help message

EXAMPLES:
  Basic run:
    smsdedup -i sms-20240101.xml

  Merge two backups into one deduplicated file:
    smsdedup -i old.xml -i new.xml -o merged.xml

  Tolerant matching across exporter quirks:
    smsdedup -i backup.xml --ignore-date-milliseconds --ignore-whitespace-differences

  Aggressive pass after a normal pass:
    smsdedup -i backup_deduplicated.xml --aggressive

ENVIRONMENT VARIABLES:
  Most flags can be set via environment variables with SMSDEDUP_ prefix:

  SMSDEDUP_OUTPUT=/path            Output file
  SMSDEDUP_LOG=/path               Removal log file
  SMSDEDUP_COUNTRY_CODE=+44        Default country code
  SMSDEDUP_WORKERS=8               Number of workers
  SMSDEDUP_AGGRESSIVE=true         Aggressive matching
  SMSDEDUP_QUIET=true              Quiet mode
  SMSDEDUP_LOG_LEVEL=debug         Logger verbosity

  Note: CLI flags override environment variables.

OUTPUT:
  smsdedup writes three artifacts per run:
  - Deduplicated backup XML, byte-preserving surviving records
    (skipped entirely when nothing was removed)
  - Removal log listing every removed record and the copy kept
  - Per-type summary table on stdout (unless --quiet)
`

// PrintHelp imprime la ayuda y termina.
func PrintHelp() {
	fmt.Fprint(os.Stdout, helpText)
	os.Exit(0)
}

// PrintVersion imprime la versión y termina.
func PrintVersion(version, commit, date string) {
	fmt.Printf("smsdedup %s\n", version)
	fmt.Printf("  Commit:  %s\n", commit)
	fmt.Printf("  Built:   %s\n", date)
	fmt.Printf("  Go:      %s\n", runtime.Version())
	os.Exit(0)
}
