package binding

import (
	"github.com/odvcencio/bindery/pkg/document"
	"github.com/odvcencio/bindery/pkg/embedded"
	"github.com/odvcencio/bindery/pkg/errors"
	"github.com/odvcencio/bindery/pkg/langmap"
	"github.com/odvcencio/bindery/pkg/logging"
	"github.com/odvcencio/bindery/pkg/signal"
	"github.com/odvcencio/bindery/pkg/textpos"
)

// propagation tracks which direction a synchronization pass is flowing.
// A single enum per channel makes "never both directions at once" a
// state rather than a conjunction of two booleans.
type propagation int

const (
	idle propagation = iota
	fromHost
	fromEmbedded
)

// Bridge is the reentrancy-guarded bidirectional synchronizer between
// a host document model and an embedded editor buffer. Content and
// language flow through independent guarded channels.
type Bridge struct {
	model     *document.Model
	component embedded.Component
	buf       embedded.Buffer
	languages *langmap.Table

	content  propagation
	language propagation

	hostSubs signal.Group
	bufSubs  signal.Group

	// synced runs after every content pass, in either direction; the
	// adapter hooks layout re-measure here.
	synced func()

	// fail receives contract violations. The default panics: silent
	// divergence between the two buffers is the one outcome this
	// component exists to prevent.
	fail func(error)

	log *logging.Logger
}

// NewBridge creates an unbound bridge between model and component.
// languages maps MIME types to embedded language ids; nil uses the
// built-in defaults. failFn overrides the panic-on-violation policy.
func NewBridge(model *document.Model, component embedded.Component, languages *langmap.Table, log *logging.Logger, failFn func(error)) *Bridge {
	if languages == nil {
		languages = langmap.Default()
	}
	if log == nil {
		log = logging.Nop()
	}
	if failFn == nil {
		failFn = func(err error) { panic(err) }
	}
	return &Bridge{
		model:     model,
		component: component,
		languages: languages,
		synced:    func() {},
		fail:      failFn,
		log:       log,
	}
}

// OnSynced sets the hook run after every completed content pass.
func (b *Bridge) OnSynced(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	b.synced = fn
}

// Bind attaches both sides and pushes the host state into the embedded
// buffer so the two start consistent.
func (b *Bridge) Bind() error {
	if b.component.Buffer() == nil {
		return errors.New(errors.ErrCodeBufferUnbound, "embedded component has no buffer")
	}

	b.hostSubs.Add(
		b.model.OnChange(b.applyHostChange),
		b.model.OnMimeTypeChange(b.applyHostMime),
		b.component.OnBufferSwap(b.rebind),
	)
	b.attachBuffer(b.component.Buffer())
	b.pushHostState()
	return nil
}

// Unbind detaches every listener on both sides.
func (b *Bridge) Unbind() {
	b.hostSubs.UnsubscribeAll()
	b.bufSubs.UnsubscribeAll()
}

// rebind is the transactional response to the embedded component
// swapping its internal buffer: detach all, attach all, push host
// content and MIME, then re-derive the MIME type from the new buffer's
// language. Never partially applied.
func (b *Bridge) rebind(buf embedded.Buffer) {
	b.log.Info(logging.CategoryBridge, "rebind", "embedded buffer swapped", nil)
	b.bufSubs.UnsubscribeAll()
	b.attachBuffer(buf)
	b.pushHostState()
	b.pullEmbeddedLanguage(buf.Language())
}

func (b *Bridge) attachBuffer(buf embedded.Buffer) {
	b.buf = buf
	b.bufSubs.Add(
		buf.OnContentChange(b.pullEmbeddedContent),
		buf.OnLanguageChange(b.pullEmbeddedLanguage),
	)
}

// pushHostState overwrites the embedded buffer with the model's
// content and language, under guard so the writes do not echo.
func (b *Bridge) pushHostState() {
	b.content = fromHost
	b.buf.SetText(b.model.Text())
	b.content = idle

	b.language = fromHost
	lang, _ := b.languages.LanguageFor(b.model.MimeType())
	b.buf.SetLanguage(lang)
	b.language = idle

	b.synced()
}

// applyHostChange mirrors one host-model change into the embedded
// buffer. Full replaces reload the buffer; incremental changes become
// a single minimal edit so embedded marks and history survive.
func (b *Bridge) applyHostChange(c document.Change) {
	if b.content != idle {
		return
	}
	b.content = fromHost
	defer func() { b.content = idle }()

	switch c.Kind {
	case document.KindSet:
		b.buf.SetText(c.Text)

	case document.KindInsert, document.KindRemove, document.KindReplace:
		// Offsets refer to the pre-change text, which is what the
		// buffer still holds. A span that does not fit means the two
		// sides already disagree; fail fast rather than miscompute a
		// range, since PositionAt would clamp it silently.
		if c.Start < 0 || c.End < c.Start || c.End > b.buf.Length() {
			b.fail(errors.Newf(errors.ErrCodeChangeInvalid,
				"host change span [%d,%d) does not fit embedded buffer of length %d",
				c.Start, c.End, b.buf.Length()))
			return
		}
		span := spanFromOffsets(b.buf, c.Start, c.End)
		if err := b.buf.ApplyEdit(span, c.Text); err != nil {
			b.fail(errors.Wrap(err, errors.ErrCodeChangeInvalid,
				"host change does not fit embedded buffer"))
			return
		}

	default:
		b.fail(errors.Newf(errors.ErrCodeChangeInvalid,
			"unrecognized change kind %q", c.Kind))
		return
	}

	b.log.Debug(logging.CategoryBridge, "host_to_embedded", c.String(), nil)
	b.synced()
}

// pullEmbeddedContent mirrors an embedded edit back into the model as
// a full assignment. The embedded side exposes no delta, so this
// direction is always a complete read.
func (b *Bridge) pullEmbeddedContent() {
	if b.content != idle {
		return
	}
	b.content = fromEmbedded
	defer func() { b.content = idle }()

	b.model.SetText(b.buf.Text())
	b.log.Debug(logging.CategoryBridge, "embedded_to_host", "", nil)
	b.synced()
}

// applyHostMime maps a model MIME change to an embedded language id.
func (b *Bridge) applyHostMime(mime string) {
	if b.language != idle {
		return
	}
	b.language = fromHost
	defer func() { b.language = idle }()

	lang, ok := b.languages.LanguageFor(mime)
	if !ok {
		b.log.Warn(logging.CategoryBridge, "mime_unmapped", mime, nil)
	}
	b.buf.SetLanguage(lang)
}

// pullEmbeddedLanguage maps an embedded language id to a model MIME
// type.
func (b *Bridge) pullEmbeddedLanguage(id string) {
	if b.language != idle {
		return
	}
	b.language = fromEmbedded
	defer func() { b.language = idle }()

	mime, ok := b.languages.MimeFor(id)
	if !ok {
		b.log.Warn(logging.CategoryBridge, "language_unmapped", id, nil)
	}
	b.model.SetMimeType(mime)
}

// spanFromOffsets converts a [start, end) rune-offset span to an
// embedded span against buf's current content.
func spanFromOffsets(buf embedded.Buffer, start, end int) textpos.EmbeddedSpan {
	return textpos.EmbeddedSpan{
		Start: buf.PositionAt(start),
		End:   buf.PositionAt(end),
	}
}
