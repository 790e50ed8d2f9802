// Package dom provides an in-memory host document for custom elements.
//
// Documents are golang.org/x/net/html node trees. Elements created through a
// Document (or parsed into one) whose tag is defined in a Registry are
// upgraded to custom elements and receive the native lifecycle callbacks:
//
//	reg := dom.NewRegistry()
//	_ = reg.Define("my-widget", dom.Definition{
//		ObservedAttributes: []string{"label"},
//		New:                newWidget,
//	})
//	doc := dom.NewDocument(reg)
//	el := doc.CreateElement("my-widget")
//	_ = el.SetAttribute("label", "hello")
//	_ = doc.Body().AppendChild(el) // ConnectedCallback
//
// Shadow roots are kept as a leading <template shadowrootmode="open"> child of
// their host, so serializing a document yields declarative shadow DOM. Queries
// made through Document never descend into shadow trees.
//
// A Document is not safe for concurrent use. Lifecycle callbacks run
// synchronously inside the mutation that triggered them and their errors are
// returned from that mutation.
package dom
