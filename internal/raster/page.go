// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package raster

import (
	"encoding/json"
	"fmt"
	"strings"

	"artboard/internal/models"
)

// RootSelector addresses the wrapper every component is mounted in.
const RootSelector = "#component-root"

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>html,body{margin:0;padding:0;background:#ffffff;}</style>
</head>
<body>
<div id="component-root" style="position:relative;box-sizing:border-box;width:%dpx;height:%dpx;overflow:hidden"><style>%s</style>%s</div>
</body>
</html>`

// buildDocument returns the HTML document for c: a wrapper of the declared
// size holding the style element followed by the markup.
func buildDocument(c *models.ComponentContent, width, height int) string {
	css := strings.ReplaceAll(c.CSS, "</style", `<\/style`)
	return fmt.Sprintf(pageTemplate, width, height, css, c.HTML)
}

// scriptRunner wraps js so it runs with the wrapper bound to "container".
// The expression evaluates to the list of error messages thrown, which is
// empty on success. Syntax errors surface when the Function is built and
// are caught the same way.
func scriptRunner(js string) string {
	literal, _ := json.Marshal(js)
	return fmt.Sprintf(`(() => {
	const errors = [];
	const root = document.querySelector(%q);
	try {
		new Function("container", %s)(root);
	} catch (e) {
		errors.push(String(e && e.message ? e.message : e));
	}
	return errors;
})()`, RootSelector, literal)
}
