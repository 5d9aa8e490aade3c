// Package template annotates a compiled CloudFormation template with the ids of the
// user pools it declares, so they show up as stack outputs after deploy.
package template

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	userPoolType = "AWS::Cognito::UserPool"
	outputPrefix = "UserPoolId"
)

// AddUserPoolOutputs sets `Outputs.UserPoolId<LogicalId> = {"Value": {"Ref": "<LogicalId>"}}` for
// every user pool resource in doc, leaving the rest of the document untouched. It returns the
// updated document and the output names written, in resource order.
func AddUserPoolOutputs(doc []byte) ([]byte, []string, error) {
	if !gjson.ValidBytes(doc) {
		return nil, nil, fmt.Errorf("compiled template is not valid JSON")
	}
	var logicalIDs []string
	gjson.GetBytes(doc, "Resources").ForEach(func(key, value gjson.Result) bool {
		if value.Get("Type").String() == userPoolType {
			logicalIDs = append(logicalIDs, key.String())
		}
		return true
	})

	out := doc
	names := make([]string, 0, len(logicalIDs))
	for _, id := range logicalIDs {
		name := outputPrefix + id
		var err error
		out, err = sjson.SetBytes(out, "Outputs."+escape(name)+".Value.Ref", id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to set output %s: %w", name, err)
		}
		names = append(names, name)
	}
	return out, names, nil
}

// AddUserPoolOutputsFile rewrites the template at path in place.
func AddUserPoolOutputsFile(path string) ([]string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat template %s: %w", path, err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	out, names, err := AddUserPoolOutputs(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(names) == 0 {
		return nil, nil
	}
	if err := os.WriteFile(path, out, st.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to write template %s: %w", path, err)
	}
	return names, nil
}

var pathEscaper = strings.NewReplacer(`.`, `\.`, `*`, `\*`, `?`, `\?`, `|`, `\|`, `#`, `\#`, `@`, `\@`)

func escape(key string) string { return pathEscaper.Replace(key) }
