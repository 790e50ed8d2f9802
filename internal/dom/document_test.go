package dom

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type recorder struct {
	host  *Element
	calls []string
	fail  error
}

func (r *recorder) ConnectedCallback() error {
	r.calls = append(r.calls, "connected")
	return r.fail
}

func (r *recorder) DisconnectedCallback() error {
	r.calls = append(r.calls, "disconnected")
	return nil
}

func (r *recorder) AttributeChangedCallback(name, oldValue, newValue string) error {
	r.calls = append(r.calls, "attr:"+name+":"+oldValue+"->"+newValue)
	return nil
}

func (r *recorder) PropertyChangedCallback(name string, oldValue, newValue any) error {
	r.calls = append(r.calls, "prop:"+name)
	return nil
}

func newRecordingRegistry(t *testing.T, instances *[]*recorder) *Registry {
	t.Helper()

	reg := NewRegistry()
	require.NoError(t, reg.Define("x-rec", Definition{
		ObservedAttributes: []string{"Label"},
		New: func(host *Element) CustomElement {
			r := &recorder{host: host}
			*instances = append(*instances, r)
			return r
		},
	}))
	return reg
}

func TestRegistryDefineValidatesNames(t *testing.T) {
	t.Parallel()

	ctor := func(*Element) CustomElement { return &recorder{} }
	reg := NewRegistry()

	require.ErrorIs(t, reg.Define("widget", Definition{New: ctor}), ErrInvalidName)
	require.ErrorIs(t, reg.Define("My-Widget", Definition{New: ctor}), ErrInvalidName)
	require.ErrorIs(t, reg.Define("font-face", Definition{New: ctor}), ErrInvalidName)
	require.ErrorIs(t, reg.Define("my-widget", Definition{}), ErrNoConstructor)

	require.NoError(t, reg.Define("my-widget", Definition{New: ctor, ObservedAttributes: []string{"MaxItems"}}))
	require.ErrorIs(t, reg.Define("my-widget", Definition{New: ctor}), ErrAlreadyDefined)

	def, ok := reg.Lookup("MY-WIDGET")
	require.True(t, ok)
	require.Equal(t, []string{"maxitems"}, def.ObservedAttributes)
	require.Equal(t, []string{"my-widget"}, reg.Tags())
}

func TestCreateElementUpgradesWithoutCallbacks(t *testing.T) {
	var instances []*recorder
	doc := NewDocument(newRecordingRegistry(t, &instances))

	el := doc.CreateElement("x-rec")
	require.Len(t, instances, 1)
	require.Same(t, el, instances[0].host)
	require.Empty(t, instances[0].calls)
	require.False(t, el.IsConnected())

	plain := doc.CreateElement("div")
	require.Nil(t, plain.Custom())
}

func TestConnectAndDisconnectCallbacks(t *testing.T) {
	var instances []*recorder
	doc := NewDocument(newRecordingRegistry(t, &instances))

	wrapper := doc.CreateElement("div")
	el := doc.CreateElement("x-rec")
	require.NoError(t, wrapper.AppendChild(el))
	require.Empty(t, instances[0].calls, "detached parents do not connect")

	require.NoError(t, doc.Body().AppendChild(wrapper))
	require.Equal(t, []string{"connected"}, instances[0].calls)
	require.True(t, el.IsConnected())

	require.NoError(t, doc.Body().RemoveChild(wrapper))
	require.Equal(t, []string{"connected", "disconnected"}, instances[0].calls)

	require.NoError(t, doc.Body().AppendChild(wrapper))
	require.Equal(t, []string{"connected", "disconnected", "connected"}, instances[0].calls)

	require.NoError(t, el.Remove())
	require.Equal(t, "disconnected", instances[0].calls[len(instances[0].calls)-1])
}

func TestConnectErrorsPropagate(t *testing.T) {
	var instances []*recorder
	doc := NewDocument(newRecordingRegistry(t, &instances))

	boom := errors.New("boom")
	el := doc.CreateElement("x-rec")
	instances[0].fail = boom

	err := doc.Body().AppendChild(el)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "<x-rec>")
}

func TestAttributeCallbacksOnlyForObservedNames(t *testing.T) {
	var instances []*recorder
	doc := NewDocument(newRecordingRegistry(t, &instances))
	el := doc.CreateElement("x-rec")

	require.NoError(t, el.SetAttribute("LABEL", "a"))
	require.NoError(t, el.SetAttribute("title", "ignored"))
	require.NoError(t, el.SetAttribute("label", "b"))
	require.NoError(t, el.RemoveAttribute("label"))
	require.NoError(t, el.RemoveAttribute("label"))

	require.Equal(t, []string{
		"attr:label:->a",
		"attr:label:a->b",
		"attr:label:b->",
	}, instances[0].calls)
	require.False(t, el.HasAttribute("label"))
	require.Equal(t, "ignored", el.GetAttribute("TITLE"))
}

func TestSetPropertyNotifiesObserver(t *testing.T) {
	var instances []*recorder
	doc := NewDocument(newRecordingRegistry(t, &instances))
	el := doc.CreateElement("x-rec")

	require.NoError(t, el.SetProperty("items", []string{"a"}))
	value, ok := el.Property("items")
	require.True(t, ok)
	require.Equal(t, []string{"a"}, value)
	require.Equal(t, []string{"prop:items"}, instances[0].calls)

	plain := doc.CreateElement("div")
	require.NoError(t, plain.SetProperty("x", 1))
}

func TestAppendChildRejectsCycles(t *testing.T) {
	doc := NewDocument(nil)
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("span")
	require.NoError(t, outer.AppendChild(inner))

	require.ErrorIs(t, inner.AppendChild(outer), ErrHierarchy)
	require.ErrorIs(t, doc.Body().RemoveChild(inner), ErrNotChild)
}

func TestParseConnectsDefinedElements(t *testing.T) {
	var instances []*recorder
	reg := newRecordingRegistry(t, &instances)

	_, err := Parse(strings.NewReader(`<html><body><x-rec label="hi"></x-rec><p>text</p><x-rec></x-rec></body></html>`), reg)
	require.NoError(t, err)
	require.Len(t, instances, 2)
	for _, inst := range instances {
		require.Equal(t, []string{"connected"}, inst.calls)
	}
	require.Equal(t, "hi", instances[0].host.GetAttribute("label"))
}

func TestShadowRootSerializesDeclaratively(t *testing.T) {
	doc := NewDocument(nil)
	host := doc.CreateElement("my-card")
	require.NoError(t, doc.Body().AppendChild(host))

	shadow := host.AttachShadow()
	require.Same(t, shadow, host.AttachShadow())
	require.Same(t, host, shadow.Host())

	shadow.Node().AppendChild(&html.Node{Type: html.TextNode, Data: "inside"})
	light := doc.CreateElement("span")
	require.NoError(t, host.AppendChild(light))

	require.Contains(t, doc.String(), `<my-card><template shadowrootmode="open">inside</template><span></span></my-card>`)
	require.Equal(t, "inside", shadow.TextContent())
	require.Equal(t, "", host.TextContent())
	require.Len(t, host.Children(), 1)
}

func TestQueriesDoNotEnterShadowTrees(t *testing.T) {
	doc := NewDocument(nil)
	host := doc.CreateElement("my-card")
	require.NoError(t, doc.Body().AppendChild(host))

	inner := &html.Node{Type: html.ElementNode, Data: "p", Attr: []html.Attribute{{Key: "class", Val: "msg"}}}
	host.AttachShadow().Node().AppendChild(inner)

	outer := doc.CreateElement("p")
	require.NoError(t, outer.SetAttribute("class", "msg"))
	require.NoError(t, doc.Body().AppendChild(outer))

	matches, err := doc.QuerySelectorAll("p.msg")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Same(t, outer, matches[0])

	found, err := host.ShadowRoot().QuerySelector("p.msg")
	require.NoError(t, err)
	require.Same(t, inner, found.Node())

	_, err = doc.QuerySelectorAll("p[")
	require.Error(t, err)
}

func TestAttachedConnectsRendererInsertedElements(t *testing.T) {
	var instances []*recorder
	doc := NewDocument(newRecordingRegistry(t, &instances))

	container := doc.CreateElement("div")
	require.NoError(t, doc.Body().AppendChild(container))

	raw := &html.Node{Type: html.ElementNode, Data: "x-rec"}
	container.Node().AppendChild(raw)
	require.NoError(t, doc.Attached(raw))
	require.Len(t, instances, 1)
	require.Equal(t, []string{"connected"}, instances[0].calls)

	container.Node().RemoveChild(raw)
	require.NoError(t, doc.Detached(raw))
	require.Equal(t, []string{"connected", "disconnected"}, instances[0].calls)
}
