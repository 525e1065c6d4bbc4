package reference

// organizationKeywords mark a mention as an organization even when it also
// contains a rejecting keyword.
var organizationKeywords = []string{
	"Committee", "Council", "Conference", "Fund",
	"Organization", "Entity", "Department", "Commission",
	"Court", "Board", "Community", "Office",
	"Association", "Government", "Group", "Summit",
	"Subcommittee",
}

// nonOrganizationKeywords reject recognizer spans that name instruments,
// events or documents rather than bodies. Matching is case-insensitive
// substring containment.
var nonOrganizationKeywords = []string{
	"Goal", "Goals", "Agenda", "Outcome",
	"Headquarters", "Declaration", "Account", "Implementation",
	"Territory", "Territories", "Act", "Action",
	"Actions", "Programme", "Agreement", "Partnership",
	"Protection of Civilian Persons", "Time of War", "Framework", "Frameworks",
	"Consensus", "Convention", "Conventions", "Related",
	"Resolution", "Resolutions", "Forum", "Meeting",
	"Strategy", "Eradicate", "General Service", "Document",
	"Deconstruction", "Status", "Statute", "Protocol",
	"Protocols", "Illicit", "Session", "A/RES/",
	"Movement", "Chair", "Treatment", "Platform",
	"Platforms", "Plan", "Weapons", "National Food Security",
	"Rules", "Budget", "Principle", "Principles",
	"System", "Systems", "Mechanism", "Report",
	"Pact", "Compact", "Trade", "Consequences",
	"United Nations Global Compact", "Facility", "Covenant", "Covenants",
	"Responsible", "Treaty", "Decade", "Wider United Nations",
	"Their", "Expert", "Personnel", "Conservation",
	"Field Service", "Information", "International Migration and Development", "Coordinator",
	"Armistice Line", "Further", "Day", "Week",
	"Month", "Year", "Criteria", "El Nio",
	"Fellowship", "Safety of Maritime Navigation", "Library", "Doha Development Round",
	"Journal", "Review", "Aid for Trade", "Sea",
	"Zone", "International Health Regulations", "International Mother", "Goodwill Ambassadors",
	"Chronicle", "Involuntary Disappearances", "Impact", "Rapporteur",
	"Rapporteurs", "Record", "Records", "Ministers",
	"Panel", "University", "Yearbook", "Messengers",
	"Terrorism", "Dialogue", "Officer", "Target",
	"Targets", "Elimination", "Council established", "Repair and Assembly",
	"Countries and Peoples", "Model Strategies and Practical Measures", "Ways and means", "Challenge",
	"Network", "Safety and Security of Radioactive Sources", "Guideline", "Guidelines",
	"Parties", "Unregulated Fishing", "Discrimination", "Armed Robbery against Ships",
	"Regular", "International Search", "Process", "Branch",
	"Context", "Orthodox Good Friday", "Seascape", "Regional Security",
	"Cooperation for", "Application", "Volunteer", "Volunteers",
	"Fishing Vessels", "Alternative", "Green Paper", "Holy See",
	"Need of Assistance", "Olympic Truce", "Mutual Understanding", "Tapta",
	"Census", "Sport for Development and Peace", "Campaign", "Protection of Child Victims of Trafficking",
	"Approach", "Service", "Commercial Shipping", "Reduction of Underwater Noise",
	"Chairs", "Co-Chairs",
}

// AdditionalOrganizations are bodies missing from the published entity
// lists.
var AdditionalOrganizations = []string{
	"Advisory Committee on Administrative and Budgetary Questions",
	"African Union Mission in Somalia",
	"European Union Rule of Law Mission in Kosovo",
	"Special Political and Decolonization Committee (Fourth Committee)",
	"United Nations Conference on Environment and Development",
	"United Nations Entity for Gender Equality and the Empowerment of Women (UN-Women)",
	"Bretton Woods Institutions",
	"International Tribunal for the Former Yugoslavia",
	"United Nations Assistance Mission in Afghanistan",
	"United Nations Operation in Cte dIvoire",
	"Consultative Group on International Agricultural Research",
}
