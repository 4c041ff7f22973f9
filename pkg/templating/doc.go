/*
Package templating lays out generated text with Go text templates.

A Renderer parses templates against a function map whose content
functions call back into a markov.Chain, so a single template can mix
fixed text with any number of generated passages. Safety limits in
TemplateConfig bound how much text a template may request.
*/
package templating
