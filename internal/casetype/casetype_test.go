package casetype

import (
	"context"
	"fmt"
	"testing"
)

type stubClient struct {
	reply string
	err   error
}

func (s *stubClient) Generate(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func (s *stubClient) GenerateStructured(ctx context.Context, prompt, schemaHint string, out any) error {
	return s.err
}

func TestClassify(t *testing.T) {
	ct := Classify(context.Background(), &stubClient{reply: "traffic_ticket"}, "I got a speeding ticket")
	if ct != TrafficTicket {
		t.Errorf("case type = %q, want traffic_ticket", ct)
	}
}

func TestClassifyNormalizesReply(t *testing.T) {
	ct := Classify(context.Background(), &stubClient{reply: "  Small_Claims \n"}, "contractor owes me money")
	if ct != SmallClaims {
		t.Errorf("case type = %q, want small_claims", ct)
	}
}

func TestClassifyUnknownLabel(t *testing.T) {
	ct := Classify(context.Background(), &stubClient{reply: "banana"}, "something odd")
	if ct != GeneralLegal {
		t.Errorf("case type = %q, want general_legal", ct)
	}
}

func TestClassifyGenerateError(t *testing.T) {
	ct := Classify(context.Background(), &stubClient{err: fmt.Errorf("api down")}, "I got a ticket")
	if ct != GeneralLegal {
		t.Errorf("case type = %q, want general_legal on error", ct)
	}
}

func TestValid(t *testing.T) {
	for _, ct := range All() {
		if !Valid(string(ct)) {
			t.Errorf("Valid(%q) = false, want true", ct)
		}
	}
	if Valid("banana") {
		t.Error("Valid(banana) = true, want false")
	}
	if Valid("") {
		t.Error("Valid(\"\") = true, want false")
	}
}
