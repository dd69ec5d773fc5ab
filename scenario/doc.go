// Package scenario loads an election from YAML and builds a System for it.
//
// A scenario names the candidacies, the region hierarchy with leaf votes and
// the district configuration:
//
//	name: Spain 2023 (excerpt)
//	candidacies: [PP, PSOE, VOX, SUMAR]
//	regions:
//	  - name: Castilla y León
//	    children:
//	      - name: Ávila
//	        votes: {PP: 42369, PSOE: 26828, VOX: 15068, SUMAR: 5027}
//	  - name: Madrid
//	    votes: {PP: 1463183, PSOE: 1004599, VOX: 506164, SUMAR: 557780}
//	districts:
//	  cutoff: 0.03
//	  districts:
//	    - region: Ávila
//	      seats: 3
//	    - region: Madrid
//	      seats: 37
package scenario
