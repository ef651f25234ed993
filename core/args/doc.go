// Package args parses the startup options a host passes to the filter.
//
// The host hands over a flat argument list such as
//
//	-path=/etc/idcheck/ids.txt
//	-path /etc/idcheck/ids.txt
//
// Any malformed or unknown option yields a *StartupArgError, which is fatal at
// startup.
package args
