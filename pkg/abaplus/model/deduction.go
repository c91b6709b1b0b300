package model

// Deduction is a witness that premise ⊢ conclusion: premise must be a
// subset of the framework's assumptions. Two deductions with equal
// premise and equal conclusion are the same node identity — this is
// what the graph exporter collapses on.
type Deduction struct {
	Premise    SentenceSet
	Conclusion SentenceSet
}

// NewDeduction builds a deduction from premise/conclusion sentences.
func NewDeduction(premise, conclusion SentenceSet) Deduction {
	return Deduction{Premise: premise, Conclusion: conclusion}
}

// Key identifies a deduction by its premise and conclusion, order
// independent over both.
func (d Deduction) Key() string {
	return d.Premise.Key() + "|-" + d.Conclusion.Key()
}

// String renders the deduction the way format_deduction did.
func (d Deduction) String() string {
	return d.Premise.String() + " |- " + d.Conclusion.String()
}

// AttackKind distinguishes a normal attack (the derivation is strong
// enough to defeat the targeted assumption outright) from a reverse
// attack (the targeted assumption strikes back because the derivation
// relies on something strictly weaker than it).
type AttackKind int

const (
	Normal AttackKind = iota
	Reverse
	// Both is not produced by the attack builder directly; the graph
	// exporter assigns it when a Normal and a Reverse edge coexist
	// between the same ordered pair of nodes.
	Both
)

func (k AttackKind) String() string {
	switch k {
	case Normal:
		return "NORMAL"
	case Reverse:
		return "REVERSE"
	default:
		return "BOTH"
	}
}

// Attack is a directed, typed edge between two deductions: attacker
// attacks attackee. Identity is (attacker, attackee, kind), so a
// normal and a reverse attack between the same pair of deductions
// coexist as distinct Attack values.
type Attack struct {
	Attacker Deduction
	Attackee Deduction
	Kind     AttackKind
}

// Key identifies an attack by attacker, attackee, and kind.
func (a Attack) Key() string {
	kindTag := "N"
	if a.Kind == Reverse {
		kindTag = "R"
	}
	return a.Attacker.Key() + "->" + kindTag + "->" + a.Attackee.Key()
}

// AttackSet is a deduplicated collection of attacks, keyed by
// Attack.Key so that redundant derivations of the same edge merge.
type AttackSet struct {
	byKey map[string]Attack
}

// NewAttackSet builds an empty AttackSet.
func NewAttackSet() AttackSet {
	return AttackSet{byKey: make(map[string]Attack)}
}

// Add inserts atk, deduplicating by identity.
func (as *AttackSet) Add(atk Attack) {
	if as.byKey == nil {
		as.byKey = make(map[string]Attack)
	}
	as.byKey[atk.Key()] = atk
}

// Len returns the number of distinct attacks.
func (as AttackSet) Len() int {
	return len(as.byKey)
}

// Slice returns the member attacks in no particular order.
func (as AttackSet) Slice() []Attack {
	out := make([]Attack, 0, len(as.byKey))
	for _, a := range as.byKey {
		out = append(out, a)
	}
	return out
}

// DeductionSet is a deduplicated collection of deductions, keyed by
// Deduction.Key.
type DeductionSet struct {
	byKey map[string]Deduction
}

// NewDeductionSet builds an empty DeductionSet.
func NewDeductionSet() DeductionSet {
	return DeductionSet{byKey: make(map[string]Deduction)}
}

// Add inserts d, deduplicating by identity.
func (ds *DeductionSet) Add(d Deduction) {
	if ds.byKey == nil {
		ds.byKey = make(map[string]Deduction)
	}
	ds.byKey[d.Key()] = d
}

// Slice returns the member deductions in no particular order.
func (ds DeductionSet) Slice() []Deduction {
	out := make([]Deduction, 0, len(ds.byKey))
	for _, d := range ds.byKey {
		out = append(out, d)
	}
	return out
}

// Len returns the number of distinct deductions.
func (ds DeductionSet) Len() int {
	return len(ds.byKey)
}
