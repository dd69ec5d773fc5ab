// Package indices measures how proportional an apportionment is.
//
// Disproportionality indices compare each candidacy's vote share with its
// seat share: LoosemoreHanby, Rose, SainteLague and Gallagher. Effective
// number of parties indices summarize fragmentation from a list of vote or
// seat counts: LaaksoTaagepera and Golosov.
//
// Every function returns 0 for inputs without votes or seats rather than NaN.
package indices
