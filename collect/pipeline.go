package collect

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"adldap/acl"
	"adldap/analyze"
	"adldap/connect"
	"adldap/queries"

	"github.com/sourcegraph/conc/pool"
)

// State is the Enumeration Pipeline's lifecycle stage (spec.md §4.7):
// Unbound -> Bound -> Schema-Loaded -> Enumerating -> Done.
type State int

const (
	StateUnbound State = iota
	StateBound
	StateSchemaLoaded
	StateEnumerating
	StateDone
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "Unbound"
	case StateBound:
		return "Bound"
	case StateSchemaLoaded:
		return "Schema-Loaded"
	case StateEnumerating:
		return "Enumerating"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Options configures one pipeline run.
type Options struct {
	// Categories defaults to queries.CategoryNames when empty.
	Categories []string
	// TimestampMode renders timestamps as raw Unix seconds instead of the
	// "%Y-%m-%d %H:%M:%S.%f %Z %z" layout (spec.md §4.4).
	TimestampMode bool
	// LoadSchema drives the Bound -> Schema-Loaded transition before
	// enumerating; skipping it leaves every attribute list un-pruned.
	LoadSchema bool
	// MethodDelaySeconds/MethodJitterSeconds pace the gap between
	// categories (spec.md §5); zero means no pacing.
	MethodDelaySeconds  int
	MethodJitterSeconds int
	// DecodeConcurrency bounds the worker pool that normalizes and
	// post-processes entries within one category's result stream. Defaults
	// to 8.
	DecodeConcurrency int
}

// Pipeline drives a connect.Directory through every query category,
// accumulating decoded Records and the cross-reference Catalogs the Graph
// Assembler depends on.
type Pipeline struct {
	dir      connect.Directory
	Types    *analyze.TypeRegistry
	Catalogs *Catalogs
	Schema   *Schema

	mu      sync.Mutex
	state   State
	Records map[string][]*Record
}

// NewPipeline returns a pipeline bound to dir, ready to run.
func NewPipeline(dir connect.Directory) *Pipeline {
	return &Pipeline{
		dir:      dir,
		Types:    analyze.NewTypeRegistry(),
		Catalogs: NewCatalogs(),
		state:    StateBound,
		Records:  make(map[string][]*Record),
	}
}

// State reports the pipeline's current lifecycle stage.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Run executes the full Enumeration Pipeline: an optional schema load,
// followed by every requested category in queries.CategoryNames order,
// paced per opts (spec.md §4.3, §4.7).
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	if opts.LoadSchema {
		schema, err := LoadSchema(ctx, p.dir, p.Types)
		if err != nil {
			return fmt.Errorf("schema collector: %w", err)
		}
		p.Schema = schema
	}
	p.setState(StateSchemaLoaded)
	p.setState(StateEnumerating)

	categories := opts.Categories
	if len(categories) == 0 {
		categories = queries.CategoryNames
	}
	concurrency := opts.DecodeConcurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	for i, name := range categories {
		if i > 0 {
			analyze.Pace(opts.MethodDelaySeconds, opts.MethodJitterSeconds)
		}
		if err := p.runCategory(ctx, name, concurrency, opts.TimestampMode); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
	}

	p.setState(StateDone)
	return nil
}

// runCategory searches one category, decoding entries concurrently through
// a bounded worker pool, then indexes the results into the catalogs.
func (p *Pipeline) runCategory(ctx context.Context, name string, concurrency int, timestampMode bool) error {
	q, ok := queries.Get(name)
	if !ok {
		return fmt.Errorf("unknown category")
	}

	attrs := q.Attributes
	if p.Schema != nil {
		attrs = p.Schema.Prune(attrs)
	}
	baseDN := p.dir.BaseDN()
	if q.BaseDN == queries.ConfigurationNamingContext {
		baseDN = p.dir.ConfigurationNamingContext()
	}

	entries, errs := p.dir.Search(ctx, connect.SearchRequest{
		BaseDN:     baseDN,
		Filter:     q.Filter,
		Attributes: attrs,
	})

	var mu sync.Mutex
	var records []*Record
	wp := pool.New().WithMaxGoroutines(concurrency)
	for e := range entries {
		e := e
		wp.Go(func() {
			rec := p.processEntry(e, timestampMode)
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
		})
	}
	wp.Wait()

	if err := <-errs; err != nil {
		return err
	}

	p.mu.Lock()
	p.Records[name] = append(p.Records[name], records...)
	p.mu.Unlock()

	p.index(name, records)
	return nil
}

func (p *Pipeline) processEntry(e *connect.Entry, timestampMode bool) *Record {
	norm := NormalizeEntry(e, timestampMode)
	return PostProcess(e, norm, p.Types, p.Catalogs.ResolveSIDName)
}

// index folds one category's decoded records into the shared catalogs
// (spec.md §2).
func (p *Pipeline) index(category string, records []*Record) {
	for _, rec := range records {
		switch category {
		case "users":
			class := string(acl.ClassUser)
			for _, oc := range rec.Attrs.Strings(analyze.AttrObjectClass) {
				if strings.EqualFold(oc, "msDS-GroupManagedServiceAccount") {
					class = string(acl.ClassGMSA)
					break
				}
			}
			p.Catalogs.AddPrincipal(rec.ObjectSID, rec.DN, rec.Attrs.String(analyze.AttrSAMAccountName), class)

		case "groups":
			p.Catalogs.AddPrincipal(rec.ObjectSID, rec.DN, rec.Attrs.String(analyze.AttrSAMAccountName), string(acl.ClassGroup))

		case "computers":
			p.Catalogs.AddPrincipal(rec.ObjectSID, rec.DN, rec.Attrs.String(analyze.AttrSAMAccountName), string(acl.ClassComputer))
			p.Catalogs.AddComputer(rec.ObjectSID, rec.Attrs.String(analyze.AttrDNSHostName), rec.Attrs.String(analyze.AttrSAMAccountName))

		case "ous":
			p.Catalogs.AddPrincipal(rec.ObjectSID, rec.DN, rec.Attrs.String(analyze.AttrName), string(acl.ClassOU))

		case "containers":
			p.Catalogs.AddPrincipal(rec.ObjectSID, rec.DN, rec.Attrs.String(analyze.AttrName), string(acl.ClassContainer))

		case "domains":
			p.Catalogs.AddDomain(rec.ObjectSID, FQDNFromDN(rec.DN), rec.Attrs.String(analyze.AttrName))
			p.Catalogs.AddPrincipal(rec.ObjectSID, rec.DN, rec.Attrs.String(analyze.AttrName), string(acl.ClassDomain))

		case "gpos":
			p.Catalogs.AddGPO(rec.DN, rec.ObjectGUID)

		case "certtemplates":
			name := rec.Attrs.String(analyze.AttrDisplayName)
			if name == "" {
				name = rec.Attrs.String(analyze.AttrName)
			}
			p.Catalogs.AddCertTemplate(name, rec.DN)
		}
	}
}

// RebuildCatalogs replays the cross-reference indexing step over records
// that were loaded back from a dump file rather than freshly collected,
// so the Graph Assembler can run against a previous run's dump without
// re-querying the directory (spec.md §6.1's dump/graph round trip).
func RebuildCatalogs(records map[string][]*Record) *Catalogs {
	p := &Pipeline{Catalogs: NewCatalogs()}
	for _, category := range queries.CategoryNames {
		p.index(category, records[category])
	}
	return p.Catalogs
}
