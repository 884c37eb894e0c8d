package ipc

import (
	"encoding/json"
	"testing"
)

func TestParseRequest_MovePayloadOmittedFieldsStayNil(t *testing.T) {
	raw := []byte(`{"command":"MOVE_WINDOW","payload":{"window":"browser","x":200}}`)

	req, err := ParseRequest(raw)
	if err != nil {
		t.Fatalf("ParseRequest() error: %v", err)
	}
	if req.Command != CommandMoveWindow {
		t.Fatalf("Command = %q, want %q", req.Command, CommandMoveWindow)
	}

	var payload MoveWindowPayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		t.Fatalf("payload unmarshal error: %v", err)
	}
	if payload.Window != "browser" {
		t.Fatalf("Window = %q, want %q", payload.Window, "browser")
	}
	if payload.X == nil || *payload.X != 200 {
		t.Fatalf("X = %v, want 200", payload.X)
	}
	if payload.Y != nil || payload.Width != nil || payload.Height != nil {
		t.Fatal("omitted rect fields should stay nil")
	}
	if payload.DurationMs != nil {
		t.Fatal("omitted duration_ms should stay nil")
	}
}

func TestParseRequest_InvalidJSON(t *testing.T) {
	if _, err := ParseRequest([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestNewOKResponse_RoundTrip(t *testing.T) {
	resp, err := NewOKResponse(StatusData{ActiveLayout: "grid", WindowCount: 3, Animating: true, DaemonRunning: true})
	if err != nil {
		t.Fatalf("NewOKResponse() error: %v", err)
	}

	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var decoded Response
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("response unmarshal error: %v", err)
	}
	if decoded.Status != "OK" {
		t.Fatalf("Status = %q, want OK", decoded.Status)
	}

	var status StatusData
	if err := json.Unmarshal(decoded.Data, &status); err != nil {
		t.Fatalf("status unmarshal error: %v", err)
	}
	if status.ActiveLayout != "grid" || status.WindowCount != 3 || !status.Animating {
		t.Fatalf("status = %+v, unexpected contents", status)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("no such window")
	if resp.Status != "ERROR" || resp.Error != "no such window" {
		t.Fatalf("response = %+v, want ERROR status with message", resp)
	}
}
