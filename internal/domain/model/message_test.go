//go:build !integration

package model

import (
	"encoding/json"
	"errors"
	"testing"

	"chat-relay/internal/domain"
)

func TestNewInboundMessage(t *testing.T) {
	a := NewInboundMessage(ChannelWhatsApp, "62812", "halo")
	b := NewInboundMessage(ChannelWhatsApp, "62812", "halo")

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected ids to be assigned")
	}
	if a.ID == b.ID {
		t.Errorf("expected distinct ids, both were %s", a.ID)
	}
	if a.ReceivedAt.IsZero() {
		t.Error("expected ReceivedAt to be set")
	}
	if a.Channel != ChannelWhatsApp || a.SenderID != "62812" || a.Text != "halo" {
		t.Errorf("unexpected message: %+v", a)
	}
}

func TestInboundMessage_Validate(t *testing.T) {
	cases := []struct {
		name    string
		sender  string
		text    string
		wantErr bool
	}{
		{"complete", "alice", "hi", false},
		{"missing sender", "", "hi", true},
		{"whitespace sender is kept", "   ", "hi", false},
		{"missing text", "alice", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewInboundMessage(ChannelTelegram, tc.sender, tc.text).Validate()
			if tc.wantErr && !errors.Is(err, domain.ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestWireFieldNames(t *testing.T) {
	in := NewInboundMessage(ChannelWhatsApp, "62812", "halo")

	b, err := json.Marshal(NewGenerationRequest(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"response_text":"halo","id":"62812"}`; got != want {
		t.Errorf("generation request: wanted %s, got %s", want, got)
	}

	out := NewOutboundMessage(in, "balasan")
	b, err = json.Marshal(GatewayPush{Token: "tok", Destination: out.Destination, Text: out.Text})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"token":"tok","notelp":"62812","text":"balasan"}`; got != want {
		t.Errorf("gateway push: wanted %s, got %s", want, got)
	}
}
