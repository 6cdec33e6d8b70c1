package parser

// charRefTable maps named character reference names, as they appear after
// the '&' and before any terminating ';', to the code points they expand
// to. Names are listed both with and without their trailing semicolon where
// the legacy (semicolon-less) form is grandfathered in by the spec, since
// namedCharacterReferenceStateParser matches longest-prefix against exactly
// these keys. This is a practical subset of the WHATWG's ~2200-entry table,
// covering the references real-world markup actually uses.
var charRefTable = map[string][]rune{
	"amp;":     {'&'},
	"amp":      {'&'},
	"lt;":      {'<'},
	"lt":       {'<'},
	"gt;":      {'>'},
	"gt":       {'>'},
	"quot;":    {'"'},
	"quot":     {'"'},
	"apos;":    {'\''},
	"nbsp;":    {' '},
	"nbsp":     {' '},
	"copy;":    {'©'},
	"copy":     {'©'},
	"reg;":     {'®'},
	"reg":      {'®'},
	"trade;":   {'™'},
	"deg;":     {'°'},
	"deg":      {'°'},
	"plusmn;":  {'±'},
	"plusmn":   {'±'},
	"micro;":   {'µ'},
	"micro":    {'µ'},
	"para;":    {'¶'},
	"para":     {'¶'},
	"middot;":  {'·'},
	"middot":   {'·'},
	"laquo;":   {'«'},
	"laquo":    {'«'},
	"raquo;":   {'»'},
	"raquo":    {'»'},
	"frac12;":  {'½'},
	"frac12":   {'½'},
	"frac14;":  {'¼'},
	"frac14":   {'¼'},
	"frac34;":  {'¾'},
	"frac34":   {'¾'},
	"times;":   {'×'},
	"times":    {'×'},
	"divide;":  {'÷'},
	"divide":   {'÷'},
	"sect;":    {'§'},
	"sect":     {'§'},
	"hellip;":  {'…'},
	"mdash;":   {'—'},
	"ndash;":   {'–'},
	"lsquo;":   {'‘'},
	"rsquo;":   {'’'},
	"ldquo;":   {'“'},
	"rdquo;":   {'”'},
	"bull;":    {'•'},
	"dagger;":  {'†'},
	"Dagger;":  {'‡'},
	"permil;":  {'‰'},
	"euro;":    {'€'},
	"pound;":   {'£'},
	"pound":    {'£'},
	"cent;":    {'¢'},
	"cent":     {'¢'},
	"yen;":     {'¥'},
	"yen":      {'¥'},
	"curren;":  {'¤'},
	"curren":   {'¤'},
	"alpha;":   {'α'},
	"beta;":    {'β'},
	"gamma;":   {'γ'},
	"delta;":   {'δ'},
	"epsilon;": {'ε'},
	"pi;":      {'π'},
	"sigma;":   {'σ'},
	"omega;":   {'ω'},
	"infin;":   {'∞'},
	"ne;":      {'≠'},
	"le;":      {'≤'},
	"ge;":      {'≥'},
	"larr;":    {'←'},
	"uarr;":    {'↑'},
	"rarr;":    {'→'},
	"darr;":    {'↓'},
	"harr;":    {'↔'},
	"spades;":  {'♠'},
	"clubs;":   {'♣'},
	"hearts;":  {'♥'},
	"diams;":   {'♦'},
	"AMP;":     {'&'},
	"AMP":      {'&'},
	"LT;":      {'<'},
	"LT":       {'<'},
	"GT;":      {'>'},
	"GT":       {'>'},
	"QUOT;":    {'"'},
	"QUOT":     {'"'},
	"sup1;":    {'¹'},
	"sup1":     {'¹'},
	"sup2;":    {'²'},
	"sup2":     {'²'},
	"sup3;":    {'³'},
	"sup3":     {'³'},
	"szlig;":   {'ß'},
	"szlig":    {'ß'},
	"iexcl;":   {'¡'},
	"iexcl":    {'¡'},
	"iquest;":  {'¿'},
	"iquest":   {'¿'},
	"ordf;":    {'ª'},
	"ordf":     {'ª'},
	"ordm;":    {'º'},
	"ordm":     {'º'},
	"not;":     {'¬'},
	"not":      {'¬'},
	"shy;":     {'­'},
	"shy":      {'­'},
	"macr;":    {'¯'},
	"macr":     {'¯'},
	"acute;":   {'´'},
	"acute":    {'´'},
	"cedil;":   {'¸'},
	"cedil":    {'¸'},
	"uml;":     {'¨'},
	"uml":      {'¨'},
	"ratio;":   {'∶'},
	"lowast;":  {'∗'},
	"minus;":   {'−'},
	"sum;":     {'∑'},
	"prod;":    {'∏'},
	"radic;":   {'√'},
	"part;":    {'∂'},
	"nabla;":   {'∇'},
	"isin;":    {'∈'},
	"notin;":   {'∉'},
	"cap;":     {'∩'},
	"cup;":     {'∪'},
	"sub;":     {'⊂'},
	"sup;":     {'⊃'},
	"sube;":    {'⊆'},
	"supe;":    {'⊇'},
	"forall;":  {'∀'},
	"exist;":   {'∃'},
	"empty;":   {'∅'},
	"and;":     {'∧'},
	"or;":      {'∨'},
	"there4;":  {'∴'},
	"sim;":     {'∼'},
	"cong;":    {'≅'},
	"asymp;":   {'≈'},
	"equiv;":   {'≡'},
	"prop;":    {'∝'},
	"ang;":     {'∠'},
	"perp;":    {'⊥'},
}
