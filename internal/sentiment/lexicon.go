package sentiment

type entry struct {
	polarity     float64
	subjectivity float64
}

// lexicon holds word-level scores tuned for teacher remarks. Polarity is in
// [-1, 1], subjectivity in [0, 1].
var lexicon = map[string]entry{
	// positive
	"excellent":    {1.0, 1.0},
	"outstanding":  {0.9, 0.9},
	"exceptional":  {0.8, 0.9},
	"brilliant":    {0.9, 1.0},
	"great":        {0.8, 0.75},
	"good":         {0.7, 0.6},
	"nice":         {0.6, 1.0},
	"positive":     {0.5, 0.5},
	"strong":       {0.43, 0.73},
	"solid":        {0.3, 0.5},
	"consistent":   {0.25, 0.25},
	"improving":    {0.4, 0.5},
	"improved":     {0.4, 0.5},
	"improvement":  {0.3, 0.4},
	"progress":     {0.3, 0.4},
	"engaged":      {0.5, 0.5},
	"engaging":     {0.5, 0.6},
	"active":       {0.4, 0.5},
	"attentive":    {0.5, 0.6},
	"curious":      {0.4, 0.7},
	"creative":     {0.5, 0.7},
	"enthusiastic": {0.6, 0.8},
	"eager":        {0.5, 0.7},
	"motivated":    {0.5, 0.6},
	"diligent":     {0.5, 0.6},
	"hardworking":  {0.6, 0.6},
	"helpful":      {0.5, 0.5},
	"polite":       {0.4, 0.6},
	"respectful":   {0.5, 0.6},
	"confident":    {0.5, 0.7},
	"focused":      {0.4, 0.5},
	"bright":       {0.6, 0.7},
	"talented":     {0.7, 0.8},
	"capable":      {0.4, 0.5},
	"keen":         {0.4, 0.6},
	"participates": {0.3, 0.3},
	"cooperative":  {0.4, 0.5},
	"organized":    {0.3, 0.4},
	"thoughtful":   {0.5, 0.7},
	"impressive":   {0.8, 1.0},
	"wonderful":    {1.0, 1.0},
	"happy":        {0.8, 1.0},
	"best":         {1.0, 0.3},
	"better":       {0.5, 0.5},
	"well":         {0.3, 0.3},
	"reliable":     {0.4, 0.5},
	"independent":  {0.3, 0.4},
	"insightful":   {0.6, 0.7},
	"quick":        {0.33, 0.5},
	"promising":    {0.5, 0.6},
	"commendable":  {0.6, 0.7},
	"dedicated":    {0.5, 0.6},
	"interested":   {0.25, 0.4},
	"love":         {0.5, 0.6},
	"loves":        {0.5, 0.6},
	"enjoys":       {0.4, 0.6},

	// negative
	"poor":         {-0.4, 0.6},
	"bad":          {-0.7, 0.67},
	"weak":         {-0.375, 0.625},
	"terrible":     {-1.0, 1.0},
	"awful":        {-1.0, 1.0},
	"lazy":         {-0.25, 0.75},
	"careless":     {-0.5, 0.6},
	"disruptive":   {-0.6, 0.7},
	"distracted":   {-0.4, 0.6},
	"distracting":  {-0.4, 0.6},
	"inattentive":  {-0.5, 0.6},
	"struggles":    {-0.4, 0.5},
	"struggling":   {-0.4, 0.5},
	"struggle":     {-0.4, 0.5},
	"difficult":    {-0.5, 1.0},
	"difficulty":   {-0.4, 0.6},
	"difficulties": {-0.4, 0.6},
	"problem":      {-0.3, 0.4},
	"problems":     {-0.3, 0.4},
	"issues":       {-0.3, 0.4},
	"late":         {-0.3, 0.6},
	"absent":       {-0.3, 0.3},
	"absences":     {-0.3, 0.3},
	"missing":      {-0.2, 0.05},
	"incomplete":   {-0.3, 0.4},
	"unprepared":   {-0.4, 0.5},
	"rude":         {-0.6, 0.8},
	"shy":          {-0.1, 0.6},
	"quiet":        {-0.05, 0.4},
	"slow":         {-0.3, 0.4},
	"worse":        {-0.4, 0.6},
	"worst":        {-1.0, 1.0},
	"fails":        {-0.5, 0.3},
	"failing":      {-0.5, 0.5},
	"failed":       {-0.5, 0.3},
	"sloppy":       {-0.5, 0.7},
	"unmotivated":  {-0.5, 0.6},
	"disengaged":   {-0.5, 0.6},
	"anxious":      {-0.25, 0.75},
	"frustrated":   {-0.7, 0.4},
	"confused":     {-0.4, 0.7},
	"behind":       {-0.4, 0.4},
	"lacks":        {-0.4, 0.4},
	"lacking":      {-0.4, 0.4},
	"needs":        {-0.1, 0.2},
	"challenges":   {-0.2, 0.4},
	"challenging":  {-0.3, 0.5},
	"hard":         {-0.29, 0.54},
	"sad":          {-0.5, 1.0},
	"concern":      {-0.3, 0.5},
	"concerns":     {-0.3, 0.5},
	"concerning":   {-0.4, 0.6},
	"worried":      {-0.4, 0.6},
	"inconsistent": {-0.3, 0.5},
	"unfocused":    {-0.4, 0.6},
}

// intensifiers scale the next sentiment word.
var intensifiers = map[string]float64{
	"very":          1.3,
	"really":        1.3,
	"extremely":     1.5,
	"highly":        1.3,
	"so":            1.3,
	"quite":         1.1,
	"truly":         1.3,
	"incredibly":    1.5,
	"exceptionally": 1.4,
	"somewhat":      0.7,
	"slightly":      0.6,
	"fairly":        0.8,
	"rather":        0.9,
}

// negations flip the next sentiment word.
var negations = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"hardly":  true,
	"barely":  true,
	"without": true,
	"nor":     true,
	"cannot":  true,
}
