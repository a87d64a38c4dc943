package sentiment

// Valences follow the VADER scale (-4 .. +4).

// baseLexicon holds common English sentiment terms
var baseLexicon = map[string]float64{
	"amazing": 2.8, "awesome": 3.1, "beautiful": 2.9, "best": 3.2, "better": 1.9,
	"brilliant": 2.8, "clean": 1.7, "clear": 1.6, "congrats": 2.4, "congratulations": 2.9,
	"cool": 1.3, "cute": 2.0, "enjoy": 2.2, "enjoyed": 2.3, "excellent": 2.7,
	"excited": 1.4, "exciting": 2.2, "fantastic": 2.6, "favorite": 2.0, "fun": 2.3,
	"funny": 1.9, "glad": 2.0, "good": 1.9, "gorgeous": 3.0, "great": 3.1,
	"haha": 2.0, "hahaha": 2.1, "happy": 2.7, "helpful": 1.8, "hilarious": 1.7,
	"impressive": 2.3, "incredible": 2.2, "informative": 1.5, "inspiring": 2.2, "interesting": 1.7,
	"legend": 2.0, "legendary": 2.2, "lol": 1.8, "lmao": 2.0, "love": 3.2,
	"loved": 2.9, "lovely": 2.8, "loving": 2.9, "masterpiece": 3.1, "nice": 1.8,
	"perfect": 2.7, "proud": 2.1, "recommend": 1.5, "respect": 2.1, "smart": 1.7,
	"solid": 1.5, "stunning": 2.7, "success": 2.7, "superb": 3.1, "thank": 1.5,
	"thanks": 1.9, "thankyou": 2.5, "top": 0.8, "useful": 1.9, "valuable": 2.1,
	"win": 2.8, "wins": 2.7, "winner": 2.8, "won": 2.7, "wonderful": 2.7,
	"wow": 2.8, "yay": 2.4, "yes": 1.7,

	"angry": -2.3, "annoying": -1.8, "awful": -2.0, "bad": -2.5, "boring": -1.3,
	"broken": -1.9, "cringe": -2.0, "crap": -1.6, "dead": -3.3, "disappointed": -1.9,
	"disappointing": -2.2, "dislike": -1.6, "dumb": -2.3, "fail": -2.5, "failed": -2.3,
	"fake": -2.1, "garbage": -2.1, "hate": -2.7, "hated": -3.2, "horrible": -2.5,
	"lame": -1.7, "lazy": -1.6, "liar": -2.6, "lies": -1.8, "misleading": -1.6,
	"overpriced": -1.9, "pathetic": -2.5, "poor": -2.1, "problem": -1.7, "sad": -2.1,
	"scam": -2.6, "shame": -2.1, "stupid": -2.4, "sucks": -1.5, "terrible": -2.1,
	"trash": -1.8, "ugly": -2.3, "unfortunately": -1.3, "upset": -1.6, "useless": -1.8,
	"wrong": -2.1,
}

// slangLexicon extends the base lexicon with Tanglish, Tinglish, Hinglish
// and internet slang. Entries override base values.
var slangLexicon = map[string]float64{
	// Tamil
	"semma": 4.0, "mass": 4.0, "verithanam": 4.0, "thala": 2.0, "thalapathy": 2.0,
	"kidu": 3.0, "adipoli": 3.0, "super": 3.0, "vera": 2.0, "level": 2.0,
	"mokka": -3.0, "kevalam": -4.0, "waste": -3.0, "worst": -4.0, "blade": -2.0,

	// Telugu
	"kiraak": 4.0, "keka": 4.0, "adurs": 4.0, "chindhi": 3.0,
	"rod": -4.0, "bokka": -4.0, "daridram": -4.0,
	"papam": -2.0, "poyindi": -2.0, "pilla": 0.0, "gelichindi": 4.0,

	// Hindi
	"mast": 4.0, "bhaval": 4.0, "kadak": 3.0, "op": 4.0, "gajab": 4.0,
	"bekar": -3.0, "ghatya": -4.0, "bakwas": -4.0, "jai": 3.0,

	// Internet
	"fire": 3.0, "lit": 3.0, "mid": -1.0, "peak": 3.0, "goated": 4.0,
	"love": 4.0, "rcb": 2.0,
}

// emojiLexicon scores common reaction emoji
var emojiLexicon = map[rune]float64{
	'😍': 3.0, '🥰': 3.0, '❤': 2.5, '💕': 2.5, '😊': 2.0, '🙂': 1.5,
	'🔥': 2.0, '👍': 2.0, '👏': 2.0, '🙌': 2.0, '💯': 2.0, '🙏': 1.5,
	'😂': 1.5, '🤣': 1.5, '😁': 2.0, '🥳': 2.5, '✨': 1.0,
	'😢': -2.0, '😭': -1.0, '😞': -2.0, '😡': -3.0, '🤬': -3.0, '😠': -2.5,
	'👎': -2.0, '💩': -2.5, '🤮': -3.0, '😴': -1.5, '🙄': -1.5,
}

// negations flip and dampen the valence of the term that follows
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "nobody": {}, "nothing": {},
	"neither": {}, "nor": {}, "cannot": {}, "without": {},
	"can't": {}, "cant": {}, "don't": {}, "dont": {}, "doesn't": {}, "doesnt": {},
	"didn't": {}, "didnt": {}, "isn't": {}, "isnt": {}, "wasn't": {}, "wasnt": {},
	"aren't": {}, "arent": {}, "won't": {}, "wont": {}, "wouldn't": {}, "wouldnt": {},
	"shouldn't": {}, "shouldnt": {}, "couldn't": {}, "couldnt": {}, "ain't": {}, "aint": {},
}

const (
	boosterIncrement = 0.293
	negationScalar   = -0.74
	exclamationBoost = 0.292
	maxExclamations  = 4
	butBeforeScalar  = 0.5
	butAfterScalar   = 1.5
	normalizeAlpha   = 15.0
)

// boosters intensify (positive) or dampen (negative) the next sentiment term
var boosters = map[string]float64{
	"absolutely": boosterIncrement, "completely": boosterIncrement, "extremely": boosterIncrement,
	"highly": boosterIncrement, "incredibly": boosterIncrement, "most": boosterIncrement,
	"really": boosterIncrement, "so": boosterIncrement, "too": boosterIncrement,
	"totally": boosterIncrement, "truly": boosterIncrement, "very": boosterIncrement,
	"hella": boosterIncrement, "bahut": boosterIncrement,

	"barely": -boosterIncrement, "hardly": -boosterIncrement, "kinda": -boosterIncrement,
	"marginally": -boosterIncrement, "slightly": -boosterIncrement, "somewhat": -boosterIncrement,
	"sorta": -boosterIncrement,
}
