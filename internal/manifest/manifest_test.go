package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `
service: auth-api
provider:
  name: aws
  stage: prod
  region: eu-west-1
custom:
  warningThreshold: 10
  cognitoClients:
    - userPoolId: eu-west-1_AbC123
      clientId: client-one
      callbackUrls: [https://app.example.com/callback]
      logoutUrls: [https://app.example.com/logout]
      allowedOAuthFlows: [code]
      allowedOAuthScopes: [openid, email]
      allowedOAuthFlowsUserPoolClient: true
      supportedIdentityProviders: [COGNITO]
      customDomain:
        name: auth.example.com
        certificateArn: arn:aws:acm:us-east-1:123456789012:certificate/abc-123
    - userPoolId: eu-west-1_AbC123
      clientId: client-two
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.Service != "auth-api" || m.Provider.Stage != "prod" || m.Provider.Region != "eu-west-1" {
		t.Fatalf("unexpected manifest header: %#v", m)
	}
	if len(m.Clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(m.Clients))
	}
	c := m.Clients[0]
	if c.CustomDomain == nil || c.CustomDomain.Name != "auth.example.com" {
		t.Fatalf("custom domain not parsed: %#v", c.CustomDomain)
	}
	if c.AllowedOAuthFlowsUserPoolClient == nil || !*c.AllowedOAuthFlowsUserPoolClient {
		t.Fatalf("allowedOAuthFlowsUserPoolClient not parsed")
	}
	second := m.Clients[1]
	if second.CustomDomain != nil || second.CallbackURLs != nil || second.AllowedOAuthFlowsUserPoolClient != nil {
		t.Fatalf("absent fields must stay absent: %#v", second)
	}
	if d := m.Domains(); len(d) != 1 || d[0].ClientID != "client-one" {
		t.Fatalf("Domains() = %#v", d)
	}
}

func TestParse_NoClients(t *testing.T) {
	for name, doc := range map[string]string{
		"no custom":      "service: x\n",
		"no key":         "service: x\ncustom:\n  other: 1\n",
		"not a list":     "service: x\ncustom:\n  cognitoClients: yes\n",
		"service object": "service:\n  name: x\n",
		"scalar custom":  "service: x\ncustom: none\n",
		"list custom":    "service: x\ncustom: [a, b]\n",
		"empty custom":   "service: x\ncustom:\n",
	} {
		m, err := Parse([]byte(doc))
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", name, err)
		}
		if len(m.Clients) != 0 || m.Service != "x" {
			t.Fatalf("%s: unexpected manifest %#v", name, m)
		}
	}
}

func TestLoad_ReportsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "serverless.yml")
	if err := os.WriteFile(path, []byte("custom: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error naming %s, got %v", path, err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	good := "arn:aws:acm:us-east-1:123456789012:certificate/abc-123"
	tests := []struct {
		name    string
		cfg     ClientConfig
		wantErr string
	}{
		{"ok without domain", ClientConfig{UserPoolID: "us-east-1_x", ClientID: "c"}, ""},
		{"ok custom domain", ClientConfig{UserPoolID: "eu-west-1_x", ClientID: "c", CustomDomain: &CustomDomain{Name: "auth.example.com", CertificateARN: good}}, ""},
		{"ok prefix domain", ClientConfig{UserPoolID: "us-east-1_x", ClientID: "c", CustomDomain: &CustomDomain{Name: "my-app"}}, ""},
		{"missing pool", ClientConfig{ClientID: "c"}, "userPoolId"},
		{"missing client", ClientConfig{UserPoolID: "us-east-1_x"}, "clientId"},
		{"missing domain name", ClientConfig{UserPoolID: "us-east-1_x", ClientID: "c", CustomDomain: &CustomDomain{}}, "customDomain.name"},
		{"dotted prefix", ClientConfig{UserPoolID: "us-east-1_x", ClientID: "c", CustomDomain: &CustomDomain{Name: "auth.example.com"}}, "prefix domain"},
		{"bare name with cert", ClientConfig{UserPoolID: "us-east-1_x", ClientID: "c", CustomDomain: &CustomDomain{Name: "auth", CertificateARN: good}}, "fully qualified"},
		{"bad arn", ClientConfig{UserPoolID: "us-east-1_x", ClientID: "c", CustomDomain: &CustomDomain{Name: "a.example.com", CertificateARN: "arn:aws:iam::1:role/x"}}, "ACM certificate ARN"},
		{"wrong cert region", ClientConfig{UserPoolID: "us-east-1_x", ClientID: "c", CustomDomain: &CustomDomain{Name: "a.example.com", CertificateARN: "arn:aws:acm:eu-west-1:123456789012:certificate/abc"}}, "must be us-east-1"},
		{"wrong partition", ClientConfig{UserPoolID: "cn-north-1_x", ClientID: "c", CustomDomain: &CustomDomain{Name: "a.example.com", CertificateARN: good}}, "partition"},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if tt.wantErr == "" {
			if err != nil {
				t.Fatalf("%s: unexpected err: %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Fatalf("%s: expected error containing %q, got %v", tt.name, tt.wantErr, err)
		}
	}
	if !errors.Is(ClientConfig{ClientID: "c"}.Validate(), ErrMissingUserPoolID) {
		t.Fatalf("expected ErrMissingUserPoolID sentinel")
	}
}

func TestRegionOfUserPool(t *testing.T) {
	cases := map[string]string{
		"us-east-1_AbC123":     "us-east-1",
		"us-gov-west-1_AbC123": "us-gov-west-1",
		"ap-southeast-2_Z9":    "ap-southeast-2",
		"not-a-pool":           "",
	}
	for id, want := range cases {
		if got := RegionOfUserPool(id); got != want {
			t.Fatalf("RegionOfUserPool(%q) = %q; want %q", id, got, want)
		}
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"b/serverless.yml", "a/serverless.yaml", "a/other.yml"} {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte("service: x\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	got, err := Discover(root, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || !strings.HasSuffix(got[0], filepath.Join("a", "serverless.yaml")) {
		t.Fatalf("unexpected discovery result: %v", got)
	}
}
