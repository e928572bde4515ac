// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewLockPinsRequirements(t *testing.T) {
	installed := map[string]string{
		"pyinstaller": "6.3.0",
		"wsdiscovery": "2.0.0",
		"onvif-zeep":  "0.2.12",
		"setuptools":  "69.0.0", // present but not a requirement
	}

	lock, err := NewLock([]string{"pyinstaller", "wsdiscovery", "onvif-zeep==0.2.12"}, installed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"onvif-zeep==0.2.12",
		"pyinstaller==6.3.0",
		"wsdiscovery==2.0.0",
	}
	if got := lock.Requirements(); !reflect.DeepEqual(got, want) {
		t.Errorf("Requirements() = %v, want %v", got, want)
	}
}

func TestNewLockRejectsMissingPackage(t *testing.T) {
	if _, err := NewLock([]string{"ghost"}, map[string]string{}); err == nil {
		t.Fatal("expected error for requirement missing from environment")
	}
}

func TestLockRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockFileName)
	lock := &Lock{Packages: map[string]string{
		"zeep": "4.2.1",
		"lxml": "5.1.0",
	}}

	if err := WriteLock(path, lock); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := ReadLock(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !reflect.DeepEqual(got.Packages, lock.Packages) {
		t.Errorf("round trip mismatch: %v != %v", got.Packages, lock.Packages)
	}
}

func TestReadLockMissingFile(t *testing.T) {
	if _, err := ReadLock(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing lockfile")
	}
}
