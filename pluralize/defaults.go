package pluralize

// Built-in English tables. Rules are listed oldest first; the engine tries
// them newest first, so a later entry overrides an earlier one.

// Several singulars share a plural ("he" and "she" both give "they"). The
// plural maps back to the last pair listed, so the two maps are inverses
// only for plurals with a single singular.
var defaultIrregulars = [][2]string{
	// Pronouns.
	{"I", "we"},
	{"me", "us"},
	{"he", "they"},
	{"she", "they"},
	{"them", "them"},
	{"myself", "ourselves"},
	{"yourself", "yourselves"},
	{"itself", "themselves"},
	{"herself", "themselves"},
	{"himself", "themselves"},
	{"themself", "themselves"},
	{"is", "are"},
	{"was", "were"},
	{"has", "have"},
	{"this", "these"},
	{"that", "those"},
	// Consonant followed by "o".
	{"echo", "echoes"},
	{"dingo", "dingoes"},
	{"volcano", "volcanoes"},
	{"tornado", "tornadoes"},
	{"torpedo", "torpedoes"},
	{"veto", "vetoes"},
	{"mosquito", "mosquitoes"},
	{"domino", "dominoes"},
	{"embargo", "embargoes"},
	// Ends with "us".
	{"genus", "genera"},
	{"viscus", "viscera"},
	{"corpus", "corpora"},
	{"hippopotamus", "hippopotami"},
	// Ends with "ma".
	{"stigma", "stigmata"},
	{"stoma", "stomata"},
	{"dogma", "dogmata"},
	{"lemma", "lemmata"},
	{"schema", "schemata"},
	{"anathema", "anathemata"},
	// Latin and Greek leftovers.
	{"memorandum", "memoranda"},
	{"phylum", "phyla"},
	{"larva", "larvae"},
	{"nebula", "nebulae"},
	{"amoeba", "amoebae"},
	{"oasis", "oases"},
	// Compounds pluralized on the head noun.
	{"mother-in-law", "mothers-in-law"},
	{"father-in-law", "fathers-in-law"},
	{"son-in-law", "sons-in-law"},
	{"daughter-in-law", "daughters-in-law"},
	{"brother-in-law", "brothers-in-law"},
	{"sister-in-law", "sisters-in-law"},
	{"runner-up", "runners-up"},
	{"hanger-on", "hangers-on"},
	{"passerby", "passersby"},
	// Other irregular rules.
	{"ox", "oxen"},
	{"axe", "axes"},
	{"die", "dice"},
	{"yes", "yeses"},
	{"foot", "feet"},
	{"eave", "eaves"},
	{"goose", "geese"},
	{"tooth", "teeth"},
	{"quiz", "quizzes"},
	{"fez", "fezzes"},
	{"canvas", "canvases"},
	{"human", "humans"},
	{"proof", "proofs"},
	{"carve", "carves"},
	{"valve", "valves"},
	{"looey", "looies"},
	{"thief", "thieves"},
	{"groove", "grooves"},
	{"pickaxe", "pickaxes"},
	{"person", "people"},
	{"child", "children"},
	{"man", "men"},
	{"woman", "women"},
	{"mouse", "mice"},
	{"louse", "lice"},
}

var defaultPluralRules = [][2]string{
	{`(?i)s?$`, "s"},
	{`(?i)[^\x00-\x7F]$`, "$0"},
	{`(?i)([^aeiou]ese)$`, "$1"},
	{`(?i)(ax|test)is$`, "$1es"},
	{`(?i)(alias|[^aou]us|t[lm]as|gas|ris)$`, "$1es"},
	{`(?i)(e[mn]u)s?$`, "$1s"},
	{`(?i)([^l]ias|[aeiou]las|[ejzr]as|[iu]am)$`, "$1"},
	{`(?i)(alumn|syllab|vir|radi|nucle|fung|cact|stimul|termin|bacill|foc|uter|loc|strat)(?:us|i)$`, "$1i"},
	{`(?i)(alumn|alg|vertebr)(?:a|ae)$`, "$1ae"},
	{`(?i)(cod|mur|sil|vert|ind)(?:ex|ices)$`, "$1ices"},
	{`(?i)(matr|append)(?:ix|ices)$`, "$1ices"},
	{`(?i)(seraph|cherub)(?:im)?$`, "$1im"},
	{`(?i)(her|at|gr)o$`, "$1oes"},
	{`(?i)(agend|addend|millenni|dat|extrem|bacteri|desiderat|strat|candelabr|errat|ov|symposi|curricul|automat|quor)(?:a|um)$`, "$1a"},
	{`(?i)(apheli|hyperbat|periheli|asyndet|noumen|phenomen|criteri|organ|prolegomen|hedr|automat)(?:a|on)$`, "$1a"},
	{`(?i)sis$`, "ses"},
	{`(?i)(?:(kni|wi|li)fe|(ar|l|ea|eo|oa|hoo)f)$`, "$1$2ves"},
	{`(?i)([^aeiouy]|qu)y$`, "$1ies"},
	{`(?i)([^ch][ieo][ln])ey$`, "$1ies"},
	{`(?i)(x|ch|ss|sh|zz)$`, "$1es"},
	{`(?i)(matr|cod|mur|sil|vert|ind|append)(?:ix|ex)$`, "$1ices"},
	{`(?i)\b((?:tit)?m|l)(?:ice|ouse)$`, "$1ice"},
	{`(?i)(pe)(?:rson|ople)$`, "$1ople"},
	{`(?i)(child)(?:ren)?$`, "$1ren"},
	{`(?i)eaux$`, "$0"},
	{`(?i)m[ae]n$`, "men"},
	{`(?i)^thou$`, "you"},
}

var defaultSingularRules = [][2]string{
	{`(?i)s$`, ""},
	{`(?i)(ss)$`, "$1"},
	{`(?i)(wi|kni|(?:after|half|high|low|mid|non|night|[^\w]|^)li)ves$`, "$1fe"},
	{`(?i)(ar|(?:wo|[ae])l|[eo][ao])ves$`, "$1f"},
	{`(?i)ies$`, "y"},
	{`(?i)(dg|ss|ois|lk|ok|wn|mb|th|ch|ec|oal|is|ck|ix|sser|ts|wb)ies$`, "$1ie"},
	{`(?i)\b(l|(?:neck|cross|hog|aun)?t|coll|faer|food|gen|goon|group|hipp|junk|vegg|(?:pork)?p|charl|calor|cut)ies$`, "$1ie"},
	{`(?i)\b(mon|smil)ies$`, "$1ey"},
	{`(?i)\b((?:tit)?m|l)ice$`, "$1ouse"},
	{`(?i)(seraph|cherub)im$`, "$1"},
	{`(?i)(x|ch|ss|sh|zz|tto|go|cho|alias|[^aou]us|t[lm]as|gas|(?:her|at|gr)o|[aeiou]ris)(?:es)?$`, "$1"},
	{`(?i)(analy|diagno|parenthe|progno|synop|the|empha|cri|ne)(?:sis|ses)$`, "$1sis"},
	{`(?i)(movie|twelve|abuse|e[mn]u)s$`, "$1"},
	{`(?i)(test)(?:is|es)$`, "$1is"},
	{`(?i)(alumn|syllab|vir|radi|nucle|fung|cact|stimul|termin|bacill|foc|uter|loc|strat)(?:us|i)$`, "$1us"},
	{`(?i)(agend|addend|millenni|dat|extrem|bacteri|desiderat|strat|candelabr|errat|ov|symposi|curricul|quor)a$`, "$1um"},
	{`(?i)(apheli|hyperbat|periheli|asyndet|noumen|phenomen|criteri|organ|prolegomen|hedr|automat)a$`, "$1on"},
	{`(?i)(alumn|alg|vertebr)ae$`, "$1a"},
	{`(?i)(cod|mur|sil|vert|ind)ices$`, "$1ex"},
	{`(?i)(matr|append)ices$`, "$1ix"},
	{`(?i)(pe)(rson|ople)$`, "$1rson"},
	{`(?i)(child)ren$`, "$1"},
	{`(?i)(eau)x?$`, "$1"},
	{`(?i)men$`, "man"},
}

var defaultUncountableWords = []string{
	"adulthood",
	"advice",
	"agenda",
	"aid",
	"aircraft",
	"alcohol",
	"ammo",
	"analytics",
	"anime",
	"athletics",
	"audio",
	"baggage",
	"bison",
	"blood",
	"bream",
	"buffalo",
	"butter",
	"carp",
	"cash",
	"chassis",
	"chess",
	"clothing",
	"cod",
	"commerce",
	"cooperation",
	"corps",
	"cotton",
	"courage",
	"debris",
	"diabetes",
	"digestion",
	"economics",
	"elk",
	"energy",
	"equipment",
	"evidence",
	"excretion",
	"expertise",
	"feedback",
	"firmware",
	"flounder",
	"flour",
	"fun",
	"furniture",
	"gallows",
	"garbage",
	"graffiti",
	"gymnastics",
	"hardware",
	"headquarters",
	"health",
	"herpes",
	"highjinks",
	"homework",
	"housework",
	"hovercraft",
	"information",
	"jeans",
	"justice",
	"knowledge",
	"kudos",
	"labour",
	"linguistics",
	"literature",
	"luck",
	"luggage",
	"machinery",
	"mackerel",
	"mail",
	"manga",
	"mathematics",
	"media",
	"metadata",
	"mews",
	"moose",
	"mud",
	"music",
	"news",
	"offspring",
	"only",
	"oxygen",
	"patience",
	"personnel",
	"physics",
	"pike",
	"plankton",
	"pliers",
	"police",
	"pollution",
	"premises",
	"rain",
	"research",
	"rice",
	"rubbish",
	"salmon",
	"scissors",
	"series",
	"sewage",
	"shambles",
	"shrimp",
	"software",
	"spacecraft",
	"species",
	"staff",
	"swine",
	"tennis",
	"traffic",
	"transportation",
	"trout",
	"tuna",
	"wealth",
	"welfare",
	"whiting",
	"wildebeest",
	"wildlife",
	"wool",
	"you",
}

var defaultUncountablePatterns = []string{
	`(?i)pok[eé]mon$`,
	`(?i)[^aeiou]ese$`,
	`(?i)deer$`,
	`(?i)fish$`,
	`(?i)measles$`,
	`(?i)o[iu]s$`,
	`(?i)pox$`,
	`(?i)sheep$`,
}
