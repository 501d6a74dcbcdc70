package generator

import (
	"regexp"
	"slices"
	"strings"
)

// Fragment is the state threaded through the rewrite stages: the framework
// symbols to import, whether the store accessor is needed, and the setup
// method text.
type Fragment struct {
	Symbols   []string
	UsesStore bool
	Setup     string
}

// WithSymbol returns a copy of f that imports name.
func (f Fragment) WithSymbol(name string) Fragment {
	if slices.Contains(f.Symbols, name) {
		return f
	}
	f.Symbols = append(slices.Clone(f.Symbols), name)
	return f
}

// Stage is one named text-to-text rewrite.
type Stage struct {
	Name  string
	Apply func(Fragment) Fragment
}

// runStages applies stages in order.
func runStages(f Fragment, stages []Stage) Fragment {
	for _, stage := range stages {
		f = stage.Apply(f)
	}
	return f
}

const (
	storeDecl    = "const store = useStore();"
	instanceDecl = "const instance = getCurrentInstance();"
	proxyDecl    = "const proxy = instance.proxy;"
)

var (
	storeRefPattern    = regexp.MustCompile(`\bthis\.\$store\b`)
	selfRefPattern     = regexp.MustCompile(`\bthis\.([A-Za-z_$][A-Za-z0-9_$]*)`)
	propsWordPattern   = regexp.MustCompile(`\bprops\b`)
	nextTickPattern    = regexp.MustCompile(`\bthis\.\$nextTick\b`)
	instanceRefPattern = regexp.MustCompile(`\bthis\.\$`)
	closeParenPattern  = regexp.MustCompile(`\}[ \t]*\n\s*\)`)
	returnNullPattern  = regexp.MustCompile(`\breturn null;`)
)

// setupStages returns the ordered rewrite pipeline for one component.
func setupStages(names nameSets, indent string) []Stage {
	return []Stage{
		storeStage(indent),
		selfReferenceStage(names),
		propsElisionStage(),
		nextTickStage(),
		instanceStage(indent),
		cleanupStage(),
	}
}

// storeStage points this.$store at the local store handle.
func storeStage(indent string) Stage {
	return Stage{Name: "store", Apply: func(f Fragment) Fragment {
		if !storeRefPattern.MatchString(f.Setup) {
			return f
		}
		f.Setup = storeRefPattern.ReplaceAllString(f.Setup, "store")
		if !strings.Contains(f.Setup, storeDecl) {
			f.Setup = injectSetup(f.Setup, indent, storeDecl)
		}
		f.UsesStore = true
		return f
	}}
}

// selfReferenceStage rewrites this.name by the section that declares name.
// this.$emit becomes the emit function taken from the setup context.
func selfReferenceStage(names nameSets) Stage {
	return Stage{Name: "self-references", Apply: func(f Fragment) Fragment {
		emits := false
		f.Setup = selfRefPattern.ReplaceAllStringFunc(f.Setup, func(match string) string {
			name := strings.TrimPrefix(match, "this.")
			if name == "$emit" {
				emits = true
				return "emit"
			}
			if ref, ok := names.selfReference(name); ok {
				return ref
			}
			return match
		})
		if emits {
			f.Setup = strings.Replace(f.Setup, "setup(props)", "setup(props, { emit })", 1)
		}
		return f
	}}
}

// propsElisionStage drops the props parameter when the signature is its only
// use.
func propsElisionStage() Stage {
	return Stage{Name: "props-elision", Apply: func(f Fragment) Fragment {
		if len(propsWordPattern.FindAllStringIndex(f.Setup, 2)) != 1 {
			return f
		}
		f.Setup = strings.Replace(f.Setup, "setup(props)", "setup()", 1)
		return f
	}}
}

func nextTickStage() Stage {
	return Stage{Name: "next-tick", Apply: func(f Fragment) Fragment {
		if !nextTickPattern.MatchString(f.Setup) {
			return f
		}
		f.Setup = nextTickPattern.ReplaceAllString(f.Setup, "nextTick")
		return f.WithSymbol("nextTick")
	}}
}

// instanceStage routes the remaining this.$x accesses through the component
// proxy.
func instanceStage(indent string) Stage {
	return Stage{Name: "instance-proxy", Apply: func(f Fragment) Fragment {
		if !instanceRefPattern.MatchString(f.Setup) {
			return f
		}
		f.Setup = instanceRefPattern.ReplaceAllString(f.Setup, "proxy.$$")
		f.Setup = injectSetup(f.Setup, indent, instanceDecl, proxyDecl)
		return f.WithSymbol("getCurrentInstance")
	}}
}

func cleanupStage() Stage {
	return Stage{Name: "cleanup", Apply: func(f Fragment) Fragment {
		f.Setup = cleanup(f.Setup)
		return f
	}}
}

// cleanup collapses doubled terminators, joins a closing parenthesis onto
// the brace line above it and turns return null into a bare return.
func cleanup(text string) string {
	text = collapseTerminators(text)
	text = closeParenPattern.ReplaceAllString(text, "})")
	return returnNullPattern.ReplaceAllString(text, "return;")
}

// injectSetup inserts statements at the top of the setup body.
func injectSetup(setup, indent string, stmts ...string) string {
	at := strings.Index(setup, "setup(")
	if at < 0 {
		return setup
	}
	brace := strings.Index(setup[at:], "{\n")
	if brace < 0 {
		return setup
	}
	pos := at + brace + 2

	var b strings.Builder
	for _, stmt := range stmts {
		b.WriteString(strings.Repeat(indent, 2))
		b.WriteString(stmt)
		b.WriteByte('\n')
	}
	return setup[:pos] + b.String() + setup[pos:]
}
