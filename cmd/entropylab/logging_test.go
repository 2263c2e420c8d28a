package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	logFile := setupLogging(false)
	if logFile != nil {
		t.Error("expected nil log file when debug=false")
		logFile.Close()
	}

	if log.Writer() != io.Discard {
		t.Errorf("expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetupLoggingEnabledWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)
	defer log.SetOutput(io.Discard)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	logPath := filepath.Join(logDir, logFileName)
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatal("expected log file to be created")
	}

	log.Println("test log message")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected log file to contain content")
	}
}

func TestSetupLoggingRotation(t *testing.T) {
	defer os.RemoveAll(logDir)
	defer log.SetOutput(io.Discard)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("write large log: %v", err)
	}

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("expected non-nil log file")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("read logs directory: %v", err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("expected a rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("new log file is %d bytes, want at most %d", info.Size(), maxLogSize)
	}
}
