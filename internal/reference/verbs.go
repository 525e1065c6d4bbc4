package reference

// introductoryVerbs open the introductory (preambular) paragraphs of a
// resolution. "taking" covers "taking into consideration".
var introductoryVerbs = []string{
	"acknowledging", "acting", "adhering", "affirming", "agreeing", "alarmed",
	"taking", "anxious", "appreciating", "asserting", "attaching", "aware",
	"bearing", "being", "believing", "cognizant", "commemorating", "commending",
	"concerned", "concluding", "concurring", "confident", "confirming", "conscious",
	"considering", "continuing", "convinced", "deeming", "deploring", "disturbed",
	"grieved", "perturbed", "regretting", "shocked", "desiring", "desirous",
	"determined", "distressed", "emphasizing", "encouraged", "endorsing", "expressing",
	"faithful", "fearing", "noting", "recalling", "gratified", "guided",
	"having", "indignant", "holding", "hopeful", "conformity", "pursuance",
	"inspired", "invoking", "opinion", "keeping", "mindful", "observing",
	"outraged", "paying", "pending", "persuaded", "realizing", "recognizing",
	"recollecting", "referring", "reiterating", "restating", "seeking", "sharing",
	"stressing", "striving", "condemning", "trusting", "underlining", "urging",
	"viewing", "warning", "welcoming", "wishing", "preventing",
}

// operativeVerbs open the operative paragraphs, in base and third-person
// forms.
var operativeVerbs = []string{
	"accept", "accepts", "recommend", "recommends", "acknowledge", "acknowledges",
	"address", "addresses", "adopt", "adopts", "proclaim", "proclaims",
	"affirm", "affirms", "appeal", "appeals", "call", "calls",
	"draw", "draws", "pledge", "pledges", "reiterate", "reiterates",
	"request", "requests", "agree", "agrees", "decide", "decides",
	"endorse", "endorses", "invite", "invites", "note", "notes",
	"welcome", "welcomes", "amend", "amends", "applaud", "applauds",
	"appoint", "appoints", "approve", "approves", "assert", "asserts",
	"assure", "assures", "authorize", "authorizes", "await", "awaits",
	"believe", "believes", "condemn", "condemns", "censure", "censures",
	"commend", "commends", "commission", "commissions", "compliment", "compliments",
	"concur", "concurs", "confirm", "confirms", "congratulate", "congratulates",
	"consider", "considers", "convey", "conveys", "declare", "declares",
	"deem", "deems", "appreciate", "appreciates", "deplore", "deplores",
	"defer", "defers", "demand", "demands", "denounce", "denounces",
	"deprecate", "deprecates", "designate", "designates", "desire", "desires",
	"determine", "determines", "direct", "directs", "dissolve", "dissolves",
	"emphasize", "emphasizes", "empower", "empowers", "encourage", "encourages",
	"entrust", "entrusts", "envisage", "envisages", "establish", "establishes",
	"exhort", "exhorts", "expect", "expects", "express", "expresses",
	"extend", "extends", "maintain", "maintains", "support", "supports",
	"formulate", "formulates", "share", "shares", "reaffirm", "reaffirms",
	"insist", "insists", "instruct", "instructs", "look", "looks",
	"make", "makes", "mandate", "mandates", "offer", "offers",
	"pay", "pays", "propose", "proposes", "realize", "realizes",
	"reassert", "reasserts", "reassure", "reassures", "recall", "recalls",
	"recognize", "recognizes", "re-emphasize", "re-emphasizes", "refer", "refers",
	"regard", "regards", "register", "registers", "regret", "regrets",
	"reject", "rejects", "remind", "reminds", "renew", "renews",
	"resolve", "resolves", "seize", "seizes", "set", "sets",
	"warn", "warns", "state", "states", "stress", "stresses",
	"suggest", "suggests", "take", "takes", "transmit", "transmits",
	"trust", "trusts", "underline", "underlines", "urge", "urges",
}
