// Package shared declares the collaborator interfaces used across the tracker packages.
package shared
