package godocument

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSource supplies font faces to the layout engine. Face returns the
// face used for drawing; MeasureFace returns the face used for text
// measurement. The size is in device units: faces are created at 72 DPI
// so one size unit maps to one pixel.
type FontSource interface {
	Face(family string, size float64, bold, italic bool) (font.Face, error)
	MeasureFace(family string, size float64, bold, italic bool) (font.Face, error)
}

// FontIndex maps a lowercase family or file base name to candidate font
// file paths. Collection members are addressed as "path#index".
type FontIndex map[string][]string

// FontLocator supplies the font tiers searched after the system
// directories: per-user installations, fonts bundled with the
// application, and the cloud/roaming font cache.
type FontLocator interface {
	UserInstalled() FontIndex
	Bundled() FontIndex
	Cloud() FontIndex
}

// faceKey uniquely identifies a font face by family, size, bold, and italic.
type faceKey struct {
	family string
	size   float64
	bold   bool
	italic bool
}

// scoredFont is one candidate in the per-base-family scoring index.
type scoredFont struct {
	name  string
	attrs fontAttrs
	font  *opentype.Font
}

// FontCache resolves family names to parsed fonts. Resolution walks an
// ordered chain: manual registrations, the system font directories
// (exact name plus style-suffix probes), a width/weight/slant scoring
// pass over same-base families, then the locator's user-installed,
// bundled and cloud tiers, and finally a static substitution table.
// Exhausting the chain is a FontNotFoundError: pagination depends on
// deterministic metrics, so the engine never silently substitutes an
// arbitrary font.
//
// A cache is safe to share across concurrent renders: parsed fonts are
// immutable and shared, while Face and MeasureFace build a fresh face
// per call. Faces hold mutable glyph buffers, so each render memoizes
// its own in a faceCache and never shares them.
type FontCache struct {
	mu      sync.RWMutex
	dirs    []string // system directories to scan for fonts
	locator FontLocator

	manual  map[string]*opentype.Font // LoadFont/LoadFontData registrations
	fonts   map[string]*opentype.Font // lowercase font name -> parsed font
	scored  map[string][]scoredFont   // base family -> style candidates
	parsed  map[string]*opentype.Font // locator path (with #i) -> parsed font
	tierIdx [3]FontIndex              // user, bundled, cloud indexes

	scanned bool
}

// NewFontCache creates a FontCache that searches the given directories
// plus the OS system font directories, with the default locator for the
// user/bundled/cloud tiers.
func NewFontCache(extraDirs ...string) *FontCache {
	return &FontCache{
		dirs:    append(systemFontDirs(), extraDirs...),
		locator: defaultFontLocator(),
		manual:  make(map[string]*opentype.Font),
		fonts:   make(map[string]*opentype.Font),
		scored:  make(map[string][]scoredFont),
		parsed:  make(map[string]*opentype.Font),
	}
}

var (
	defaultCacheOnce sync.Once
	defaultCache     *FontCache
)

// DefaultFontCache returns the process-wide cache, created on first use.
// Renders that do not specify their own FontSource share it.
func DefaultFontCache() *FontCache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewFontCache()
	})
	return defaultCache
}

// SetLocator replaces the locator for the user/bundled/cloud tiers.
// Must be called before the first face lookup.
func (fc *FontCache) SetLocator(l FontLocator) {
	fc.mu.Lock()
	fc.locator = l
	fc.mu.Unlock()
}

// Face returns a render face (HintingFull) for the given properties.
// Every call builds a new face over the shared parsed font: a face is
// not safe for use from more than one goroutine at a time.
func (fc *FontCache) Face(family string, size float64, bold, italic bool) (font.Face, error) {
	return fc.face(family, size, bold, italic, font.HintingFull)
}

// MeasureFace returns a measurement face with HintingNone. Word's layout
// engine wraps text using unhinted (ideal) glyph metrics; measuring with
// HintingNone produces advances that match its DirectWrite layout, so
// lines break at the same character positions.
func (fc *FontCache) MeasureFace(family string, size float64, bold, italic bool) (font.Face, error) {
	return fc.face(family, size, bold, italic, font.HintingNone)
}

func (fc *FontCache) face(family string, size float64, bold, italic bool, hinting font.Hinting) (font.Face, error) {
	fc.ensureScanned()

	fc.mu.Lock()
	f, err := fc.resolveLocked(family, bold, italic)
	fc.mu.Unlock()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face for %q: %w", family, err)
	}
	return face, nil
}

// faceCache memoizes the faces of one render. Faces carry a glyph
// buffer that every draw and measure mutates, so they stay private to
// the render that built them; the FontSource behind the cache can be
// shared freely. A render runs on one goroutine, so no locking.
type faceCache struct {
	src          FontSource
	faces        map[faceKey]font.Face
	measureFaces map[faceKey]font.Face
}

func newFaceCache(src FontSource) *faceCache {
	return &faceCache{
		src:          src,
		faces:        make(map[faceKey]font.Face),
		measureFaces: make(map[faceKey]font.Face),
	}
}

func (c *faceCache) Face(family string, size float64, bold, italic bool) (font.Face, error) {
	return c.lookup(c.faces, c.src.Face, family, size, bold, italic)
}

func (c *faceCache) MeasureFace(family string, size float64, bold, italic bool) (font.Face, error) {
	return c.lookup(c.measureFaces, c.src.MeasureFace, family, size, bold, italic)
}

func (c *faceCache) lookup(cache map[faceKey]font.Face, build func(string, float64, bool, bool) (font.Face, error), family string, size float64, bold, italic bool) (font.Face, error) {
	key := faceKey{family: strings.ToLower(family), size: size, bold: bold, italic: italic}
	if face, ok := cache[key]; ok {
		return face, nil
	}
	face, err := build(family, size, bold, italic)
	if err != nil {
		return nil, err
	}
	cache[key] = face
	return face, nil
}

// resolveLocked walks the full fallback chain, ending with the
// substitution table. Caller holds fc.mu.
func (fc *FontCache) resolveLocked(family string, bold, italic bool) (*opentype.Font, error) {
	if f := fc.resolveTiersLocked(family, bold, italic); f != nil {
		return f, nil
	}
	// Substitution is a single hop: substitute names resolve through the
	// regular tiers only, never through the table again.
	for _, alt := range fontSubstitutions[strings.ToLower(family)] {
		if f := fc.resolveTiersLocked(alt, bold, italic); f != nil {
			return f, nil
		}
	}
	return nil, &FontNotFoundError{Family: family, Bold: bold, Italic: italic}
}

// resolveTiersLocked runs the chain short of substitution.
func (fc *FontCache) resolveTiersLocked(family string, bold, italic bool) *opentype.Font {
	lower := strings.ToLower(family)
	bare := bareNameUsable(family, bold)

	if f := lookupRegistered(fc.manual, lower, bold, italic, bare); f != nil {
		return f
	}
	if f := lookupRegistered(fc.fonts, lower, bold, italic, bare); f != nil {
		return f
	}
	if f := fc.resolveScoredLocked(family, bold, italic); f != nil {
		return f
	}
	for _, idx := range fc.tierIdx {
		if f := fc.resolveIndexLocked(idx, family, bold, italic); f != nil {
			return f
		}
	}
	return nil
}

// bareNameUsable reports whether an exact-name hit may satisfy the
// request. A bold request on a family whose name already encodes a
// medium-weight suffix ("Arial Medium") must pass over the exact entry
// so the scoring pass retargets to the base family's true bold.
func bareNameUsable(family string, bold bool) bool {
	if !bold {
		return true
	}
	_, attrs := parseFontAttrs(family)
	return attrs.weight == weightRegular || attrs.weight == weightBold
}

// lookupRegistered finds a parsed font by name, trying style-specific
// suffixes first: Windows fonts register as "arialbd", "arialbi",
// "ariali" and so on. The suffix-free name is consulted only when bare
// says the request allows it.
func lookupRegistered(m map[string]*opentype.Font, lower string, bold, italic bool, bare bool) *opentype.Font {
	for _, suffix := range styleSuffixes(bold, italic) {
		if f, ok := m[lower+suffix]; ok {
			return f
		}
	}
	if !bare {
		return nil
	}
	if f, ok := m[lower]; ok {
		return f
	}
	return nil
}

// styleSuffixes returns the name-suffix probes for a style, most
// specific first.
func styleSuffixes(bold, italic bool) []string {
	switch {
	case bold && italic:
		return []string{" bold italic", "bi", " bolditalic", "z"}
	case bold:
		return []string{" bold", "bd", "b"}
	case italic:
		return []string{" italic", "i", " it"}
	}
	return nil
}

// resolveScoredLocked strips weight/width/style suffixes off the
// requested family ("Arial Narrow Semibold" -> "arial") and scores every
// known candidate sharing that base: width match counts 4, weight 2,
// slant 1. Ties prefer the regular weight unless bold was requested.
func (fc *FontCache) resolveScoredLocked(family string, bold, italic bool) *opentype.Font {
	base, want := parseFontAttrs(family)
	if bold {
		// A bold request on a weight-suffixed family ("Arial Medium")
		// targets the base family's true bold, not a synthesized one.
		want.weight = weightBold
	}
	if italic {
		want.slant = slantItalic
	}

	cands := fc.scored[base]
	if len(cands) == 0 {
		return nil
	}
	bestIdx, bestScore := 0, -1
	for i, c := range cands {
		s := scoreAttrs(want, c.attrs)
		if s > bestScore {
			bestIdx, bestScore = i, s
			continue
		}
		if s == bestScore && !bold &&
			c.attrs.weight == weightRegular && cands[bestIdx].attrs.weight != weightRegular {
			bestIdx = i
		}
	}
	return cands[bestIdx].font
}

// resolveIndexLocked resolves a family against a locator index: exact
// and style-suffixed keys first (also space-stripped, since indexes key
// file base names), then a scoring pass over same-base keys. Paths are
// parsed lazily and cached.
func (fc *FontCache) resolveIndexLocked(idx FontIndex, family string, bold, italic bool) *opentype.Font {
	if len(idx) == 0 {
		return nil
	}
	lower := strings.ToLower(family)
	keys := []string{lower}
	if squeezed := strings.ReplaceAll(lower, " ", ""); squeezed != lower {
		keys = append(keys, squeezed)
	}
	for _, k := range keys {
		for _, suffix := range styleSuffixes(bold, italic) {
			if f := fc.loadFirstLocked(idx[k+suffix]); f != nil {
				return f
			}
		}
	}
	if bareNameUsable(family, bold) {
		for _, k := range keys {
			if f := fc.loadFirstLocked(idx[k]); f != nil {
				return f
			}
		}
	}

	base, want := parseFontAttrs(family)
	if bold {
		want.weight = weightBold
	}
	if italic {
		want.slant = slantItalic
	}
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Strings(names)
	bestScore := -1
	bestWeight := ""
	var bestPaths []string
	for _, name := range names {
		nameBase, attrs := parseFontAttrs(name)
		if nameBase != base {
			continue
		}
		s := scoreAttrs(want, attrs)
		better := s > bestScore
		if s == bestScore && !bold && attrs.weight == weightRegular && bestWeight != weightRegular {
			better = true
		}
		if better {
			bestScore, bestWeight, bestPaths = s, attrs.weight, idx[name]
		}
	}
	return fc.loadFirstLocked(bestPaths)
}

func (fc *FontCache) loadFirstLocked(paths []string) *opentype.Font {
	for _, p := range paths {
		if f := fc.loadPathLocked(p); f != nil {
			return f
		}
	}
	return nil
}

// loadPathLocked parses (and caches) the font at path; "path#i" selects
// member i of a collection. Unreadable or oversized files resolve to nil.
func (fc *FontCache) loadPathLocked(path string) *opentype.Font {
	if f, ok := fc.parsed[path]; ok {
		return f
	}
	file, member := splitCollectionPath(path)
	info, err := os.Stat(file)
	if err != nil || info.Size() > maxFontFileSize {
		return nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	var f *opentype.Font
	if member >= 0 {
		coll, err := opentype.ParseCollection(data)
		if err != nil || member >= coll.NumFonts() {
			return nil
		}
		f, err = coll.Font(member)
		if err != nil {
			return nil
		}
	} else {
		f, err = opentype.Parse(data)
		if err != nil {
			return nil
		}
	}
	fc.parsed[path] = f
	return f
}

// splitCollectionPath splits "path#2" into ("path", 2); plain paths
// return member -1.
func splitCollectionPath(path string) (string, int) {
	if i := strings.LastIndexByte(path, '#'); i >= 0 {
		if n, err := strconv.Atoi(path[i+1:]); err == nil && n >= 0 {
			return path[:i], n
		}
	}
	return path, -1
}

// LoadFont manually registers a TrueType/OpenType font file under the
// given name. Manual registrations take priority over every scanned
// tier. Returns an error if the file exceeds maxFontFileSize.
func (fc *FontCache) LoadFont(name string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.manual[strings.ToLower(name)] = f
	fc.indexScoredLocked(strings.ToLower(name), f)
	if family, err := f.Name(nil, sfnt.NameIDFamily); err == nil && family != "" {
		fc.manual[strings.ToLower(family)] = f
		fc.indexScoredLocked(strings.ToLower(family), f)
	}
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		fc.scanDirLocked(dir, 0)
	}
	if fc.locator != nil {
		fc.tierIdx[0] = fc.locator.UserInstalled()
		fc.tierIdx[1] = fc.locator.Bundled()
		fc.tierIdx[2] = fc.locator.Cloud()
	}
}

// maxFontScanDepth limits recursive directory traversal when scanning for fonts.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

func (fc *FontCache) scanDirLocked(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDirLocked(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		isTTC := strings.HasSuffix(lower, ".ttc") || strings.HasSuffix(lower, ".otc")
		isSingle := strings.HasSuffix(lower, ".ttf") || strings.HasSuffix(lower, ".otf")
		if !isTTC && !isSingle {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}

		base := strings.TrimSuffix(lower, filepath.Ext(lower))
		if isTTC {
			fc.loadCollectionLocked(data, base)
		} else {
			fc.loadSingleFontLocked(data, base)
		}
	}
}

// loadSingleFontLocked parses a single TTF/OTF font and registers it by
// filename base and internal names.
func (fc *FontCache) loadSingleFontLocked(data []byte, base string) {
	f, err := opentype.Parse(data)
	if err != nil {
		return
	}
	fc.registerLocked(base, f)
	fc.registerNamesLocked(f)
}

// loadCollectionLocked parses a TTC/OTC collection and registers each
// member by its internal names; the first member also claims the
// filename base.
func (fc *FontCache) loadCollectionLocked(data []byte, base string) {
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return
	}
	n := coll.NumFonts()
	for i := 0; i < n; i++ {
		f, err := coll.Font(i)
		if err != nil {
			continue
		}
		if i == 0 {
			fc.registerLocked(base, f)
		}
		fc.registerNamesLocked(f)
	}
}

// registerNamesLocked registers a font by the family and full names from
// its name table (e.g. "Arial Narrow" and "Arial Narrow Bold").
func (fc *FontCache) registerNamesLocked(f *opentype.Font) {
	if family, err := f.Name(nil, sfnt.NameIDFamily); err == nil && family != "" {
		fc.registerLocked(strings.ToLower(family), f)
	}
	if full, err := f.Name(nil, sfnt.NameIDFull); err == nil && full != "" {
		fc.registerLocked(strings.ToLower(full), f)
	}
}

func (fc *FontCache) registerLocked(lower string, f *opentype.Font) {
	if lower == "" {
		return
	}
	fc.fonts[lower] = f
	fc.indexScoredLocked(lower, f)
}

// indexScoredLocked files a registered name into the per-base scoring
// index. First registration of a name wins.
func (fc *FontCache) indexScoredLocked(lower string, f *opentype.Font) {
	base, attrs := parseFontAttrs(lower)
	if base == "" {
		return
	}
	for _, c := range fc.scored[base] {
		if c.name == lower {
			return
		}
	}
	fc.scored[base] = append(fc.scored[base], scoredFont{name: lower, attrs: attrs, font: f})
}

// Canonical style attribute values.
const (
	widthNormal   = "normal"
	weightRegular = "regular"
	weightBold    = "bold"
	slantRegular  = "regular"
	slantItalic   = "italic"
)

// fontAttrs is the style triple parsed from a family or file name.
type fontAttrs struct {
	width  string
	weight string
	slant  string
}

func scoreAttrs(want, have fontAttrs) int {
	s := 0
	if have.width == want.width {
		s += 4
	}
	if have.weight == want.weight {
		s += 2
	}
	if have.slant == want.slant {
		s += 1
	}
	return s
}

var widthTokens = map[string]string{
	"narrow":        "condensed",
	"condensed":     "condensed",
	"compressed":    "condensed",
	"semicondensed": "semicondensed",
	"expanded":      "expanded",
	"extended":      "expanded",
	"wide":          "expanded",
}

var weightTokens = map[string]string{
	"thin":       "thin",
	"hairline":   "thin",
	"extralight": "extralight",
	"ultralight": "extralight",
	"light":      "light",
	"regular":    weightRegular,
	"normal":     weightRegular,
	"book":       weightRegular,
	"roman":      weightRegular,
	"medium":     "medium",
	"semibold":   "semibold",
	"demibold":   "semibold",
	"demi":       "semibold",
	"bold":       weightBold,
	"extrabold":  "extrabold",
	"ultrabold":  "extrabold",
	"heavy":      "black",
	"black":      "black",
}

var slantTokens = map[string]string{
	"italic":  slantItalic,
	"oblique": slantItalic,
}

// parseFontAttrs strips trailing style tokens off a name and returns the
// base family plus the style triple the tokens encoded. "Arial Narrow
// Semibold Italic" parses to ("arial", condensed/semibold/italic).
// Unrecognized tokens stop the strip, and the last token is never
// stripped (a family named just "Bold" stays "bold").
func parseFontAttrs(name string) (string, fontAttrs) {
	attrs := fontAttrs{width: widthNormal, weight: weightRegular, slant: slantRegular}
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(name))
	tokens := strings.Fields(norm)
	for len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		rest := tokens[:len(tokens)-1]
		// Join split modifier forms: "semi bold", "extra light".
		if len(rest) > 1 {
			switch rest[len(rest)-1] {
			case "semi", "demi", "extra", "ultra":
				joined := rest[len(rest)-1] + last
				_, isWeight := weightTokens[joined]
				_, isWidth := widthTokens[joined]
				if isWeight || isWidth {
					last = joined
					rest = rest[:len(rest)-1]
				}
			}
		}
		if w, ok := widthTokens[last]; ok {
			attrs.width = w
			tokens = rest
			continue
		}
		if w, ok := weightTokens[last]; ok {
			attrs.weight = w
			tokens = rest
			continue
		}
		if s, ok := slantTokens[last]; ok {
			attrs.slant = s
			tokens = rest
			continue
		}
		break
	}
	return strings.Join(tokens, " "), attrs
}

// fontSubstitutions maps families that are commonly referenced but often
// not installable (cloud-only, premium, platform-foreign, or named in
// Chinese) to metric-compatible alternatives, tried in order. The table
// is consulted only after every lookup tier has failed.
var fontSubstitutions = map[string][]string{
	// Microsoft cloud-only families.
	"aptos":         {"calibri", "carlito"},
	"aptos display": {"calibri", "carlito"},
	"aptos narrow":  {"calibri", "carlito"},
	"bierstadt":     {"arial", "liberation sans"},
	"grandview":     {"arial", "liberation sans"},
	"seaford":       {"georgia", "gelasio"},
	"skeena":        {"segoe ui", "arial"},
	"tenorite":      {"century gothic", "arial"},
	"walbaum":       {"times new roman", "liberation serif"},
	// Cross-platform equivalences.
	"helvetica":       {"arial", "liberation sans"},
	"helvetica neue":  {"arial", "liberation sans"},
	"times":           {"times new roman", "liberation serif"},
	"courier":         {"courier new", "liberation mono"},
	"arial":           {"liberation sans", "helvetica", "dejavu sans"},
	"times new roman": {"liberation serif", "times", "dejavu serif"},
	"courier new":     {"liberation mono", "courier", "dejavu sans mono"},
	"calibri":         {"carlito", "dejavu sans"},
	"cambria":         {"caladea", "dejavu serif"},
	// Chinese font names as written in documents.
	"宋体":   {"simsun", "noto serif cjk sc"},
	"新宋体":  {"nsimsun", "simsun"},
	"黑体":   {"simhei", "noto sans cjk sc"},
	"微软雅黑": {"microsoft yahei", "noto sans cjk sc"},
	"楷体":   {"kaiti"},
	"仿宋":   {"fangsong"},
	"等线":   {"dengxian", "dejavu sans"},
	"隶书":   {"lisu"},
	"幼圆":   {"youyuan"},
}

// DirLocator is a FontLocator over fixed directory lists. The zero value
// has no directories and yields empty indexes.
type DirLocator struct {
	UserDirs    []string
	BundledDirs []string
	CloudDirs   []string
}

func (l *DirLocator) UserInstalled() FontIndex { return buildFontIndex(l.UserDirs) }
func (l *DirLocator) Bundled() FontIndex       { return buildFontIndex(l.BundledDirs) }
func (l *DirLocator) Cloud() FontIndex         { return buildFontIndex(l.CloudDirs) }

// defaultFontLocator assembles the OS-specific user/bundled/cloud
// directories. The bundled tier looks for a "fonts" directory next to
// the executable and under the working directory.
func defaultFontLocator() *DirLocator {
	l := &DirLocator{}
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		if lad := os.Getenv("LOCALAPPDATA"); lad != "" {
			l.UserDirs = append(l.UserDirs, filepath.Join(lad, "Microsoft", "Windows", "Fonts"))
			l.CloudDirs = append(l.CloudDirs, filepath.Join(lad, "Microsoft", "FontCache", "4", "CloudFonts"))
		}
	case "darwin":
		if home != "" {
			l.UserDirs = append(l.UserDirs, filepath.Join(home, "Library", "Fonts"))
			l.CloudDirs = append(l.CloudDirs, filepath.Join(home, "Library", "Group Containers", "UBF8T346G9.Office", "FontCache"))
		}
	default: // linux, freebsd, etc.
		if home != "" {
			l.UserDirs = append(l.UserDirs,
				filepath.Join(home, ".local", "share", "fonts"),
				filepath.Join(home, ".fonts"))
		}
	}

	if exe, err := os.Executable(); err == nil {
		l.BundledDirs = append(l.BundledDirs, filepath.Join(filepath.Dir(exe), "fonts"))
	}
	if wd, err := os.Getwd(); err == nil {
		l.BundledDirs = append(l.BundledDirs, filepath.Join(wd, "fonts"))
	}
	return l
}

// buildFontIndex walks the directories (depth-limited) and indexes every
// font file by its lowercase file base name, its internal family and
// full names, and space-stripped forms of each.
func buildFontIndex(dirs []string) FontIndex {
	idx := make(FontIndex)
	for _, dir := range dirs {
		indexFontDir(idx, dir, 0)
	}
	return idx
}

func indexFontDir(idx FontIndex, dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			indexFontDir(idx, filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		isTTC := strings.HasSuffix(lower, ".ttc") || strings.HasSuffix(lower, ".otc")
		isSingle := strings.HasSuffix(lower, ".ttf") || strings.HasSuffix(lower, ".otf")
		if !isTTC && !isSingle {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		path := filepath.Join(dir, name)
		base := strings.TrimSuffix(lower, filepath.Ext(lower))
		data, err := os.ReadFile(path)
		if err != nil {
			idx.add(base, path)
			continue
		}
		if isTTC {
			coll, err := opentype.ParseCollection(data)
			if err != nil {
				idx.add(base, path)
				continue
			}
			for i := 0; i < coll.NumFonts(); i++ {
				f, err := coll.Font(i)
				if err != nil {
					continue
				}
				member := path + "#" + strconv.Itoa(i)
				if i == 0 {
					idx.add(base, member)
				}
				indexFontNames(idx, f, member)
			}
			continue
		}
		idx.add(base, path)
		if f, err := opentype.Parse(data); err == nil {
			indexFontNames(idx, f, path)
		}
	}
}

func indexFontNames(idx FontIndex, f *opentype.Font, path string) {
	if family, err := f.Name(nil, sfnt.NameIDFamily); err == nil && family != "" {
		idx.add(strings.ToLower(family), path)
	}
	if full, err := f.Name(nil, sfnt.NameIDFull); err == nil && full != "" {
		idx.add(strings.ToLower(full), path)
	}
}

func (idx FontIndex) add(name, path string) {
	if name == "" {
		return
	}
	idx.addKey(name, path)
	if squeezed := strings.ReplaceAll(name, " ", ""); squeezed != name {
		idx.addKey(squeezed, path)
	}
}

func (idx FontIndex) addKey(key, path string) {
	for _, p := range idx[key] {
		if p == path {
			return
		}
	}
	idx[key] = append(idx[key], path)
}

// systemFontDirs returns OS-specific system font directories. Per-user
// directories belong to the locator's user tier.
func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		return []string{filepath.Join(windir, "Fonts")}
	case "darwin":
		return []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
		}
	default: // linux, freebsd, etc.
		return []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
		}
	}
}
