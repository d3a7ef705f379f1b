// Package discovery locates git repositories beneath a scan root.
package discovery
