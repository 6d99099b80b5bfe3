// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package distrib

import (
	"context"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/layout"
	"github.com/walteh/makedistrib/pkg/text"
)

// Description returns the README distribution type and its paragraph
func Description(sel layout.Selection) (string, string, error) {
	p := sel.Platform.DisplayName()
	switch sel.Mode {
	case layout.ModeStandard:
		return "Standard", "This distribution contains all components necessary to build and distribute an\n" +
			"application using CEF on the " + p + " platform. Please see the LICENSING\n" +
			"section of this document for licensing terms and conditions.", nil
	case layout.ModeMinimal:
		return "Minimal", "This distribution contains the minimal components necessary to build and\n" +
			"distribute an application using CEF on the " + p + " platform. Please see\n" +
			"the LICENSING section of this document for licensing terms and conditions.", nil
	case layout.ModeClient:
		app := "cefclient"
		if sel.Platform == layout.Linux {
			app = "cefsimple"
		}
		return "Client", "This distribution contains a release build of the " + app + " sample application\n" +
			"for the " + p + " platform. Please see the LICENSING section of this document for\n" +
			"licensing terms and conditions.", nil
	case layout.ModeSandbox:
		switch sel.Platform {
		case layout.Windows:
			return "Sandbox", "This distribution contains only the bootstrap executables. Please see\n" +
				"the LICENSING section of this document for licensing terms and conditions.", nil
		case layout.Mac:
			return "Sandbox", "This distribution contains only the cef_sandbox dynamic library. Please see\n" +
				"the LICENSING section of this document for licensing terms and conditions.", nil
		}
	case layout.ModeTools:
		return "Tools", "This distribution contains additional tools for building CEF-based applications.", nil
	}
	return "", "", errors.Errorf("no readme description for %s mode on %s", sel.Mode, sel.Platform)
}

// readmeComponents lists the README parts of a mode in order
func readmeComponents(mode layout.Mode) []string {
	parts := []string{"header", string(mode)}
	if mode != layout.ModeSandbox && mode != layout.ModeTools {
		parts = append(parts, "redistrib")
	}
	return append(parts, "footer")
}

// readmeTokens are the $NAME$ values of the README
func (rc *RunContext) readmeTokens() (text.Context, error) {
	distribType, distribDesc, err := Description(rc.Selection)
	if err != nil {
		return nil, err
	}
	return text.Strings(map[string]string{
		"CEF_URL":      rc.CEF.URL,
		"CEF_REV":      rc.CEF.Hash,
		"CEF_VER":      rc.Version.Long(),
		"CHROMIUM_URL": rc.Chromium.URL,
		"CHROMIUM_REV": rc.Chromium.Hash,
		"CHROMIUM_VER": rc.ChromiumVersion.String(),
		"DATE":         rc.Date,
		"PLATFORM":     rc.Selection.Platform.DisplayName(),
		"DISTRIB_TYPE": distribType,
		"DISTRIB_DESC": distribDesc,
	}), nil
}

// 📄 BuildReadme assembles README.txt from its components and fills in the tokens
func (rc *RunContext) BuildReadme(ctx context.Context) ([]byte, error) {
	parts := readmeComponents(rc.Selection.Mode)
	chunks := make([]string, 0, len(parts))
	for _, name := range parts {
		path, err := rc.Paths.ReadmeComponent(name)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Errorf("reading readme component %s: %w", name, err)
		}
		chunks = append(chunks, string(data))
	}

	tokens, err := rc.readmeTokens()
	if err != nil {
		return nil, err
	}

	replacer := text.NewSimpleTextReplacer()
	rules := text.Rules(tokens, text.Dollar)
	if err := replacer.ValidateRules(rules); err != nil {
		return nil, err
	}
	result, err := replacer.ReplaceText(ctx, strings.NewReader(strings.Join(chunks, "\n\n")), rules)
	if err != nil {
		return nil, err
	}
	return result.ModifiedContent, nil
}

// stepReadme creates the main output directory, README.txt and LICENSE.txt
func (rc *RunContext) stepReadme(ctx context.Context) error {
	dir, err := rc.Tree.Create(ctx, rc.OutputName)
	if err != nil {
		return err
	}
	rc.MainDir = dir

	data, err := rc.BuildReadme(ctx)
	if err != nil {
		return err
	}
	if err := rc.writeFile(ctx, rc.mainPath("README.txt"), data); err != nil {
		return err
	}

	return rc.transferGroup(ctx, rc.common, layout.GroupLicense, rc.Paths.CefDir, rc.MainDir)
}

// stepCredits copies the generated license credits page
func (rc *RunContext) stepCredits(ctx context.Context) error {
	// probes the debug build before release, see Paths.FindGenerated
	src, err := rc.Paths.FindGenerated(layout.CreditsFile)
	if err != nil {
		return err
	}
	return rc.copyFile(ctx, src, rc.mainPath("CREDITS.html"))
}
