package analysis

type lexEntry struct {
	polarity     float64
	subjectivity float64
}

var intensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"extremely":  1.5,
	"absolutely": 1.4,
	"incredibly": 1.4,
	"super":      1.3,
	"so":         1.2,
	"quite":      1.1,
	"truly":      1.2,
	"totally":    1.2,
}

var lexicon = map[string]lexEntry{
	// positive
	"love":         {0.5, 0.6},
	"loved":        {0.7, 0.8},
	"loving":       {0.6, 0.6},
	"amazing":      {0.6, 0.9},
	"excellent":    {1.0, 1.0},
	"perfect":      {1.0, 1.0},
	"perfectly":    {1.0, 1.0},
	"beautiful":    {0.85, 1.0},
	"beautifully":  {0.85, 1.0},
	"stunning":     {0.7, 0.9},
	"gorgeous":     {0.7, 0.9},
	"great":        {0.8, 0.75},
	"fantastic":    {0.4, 0.9},
	"awesome":      {1.0, 1.0},
	"wonderful":    {1.0, 1.0},
	"good":         {0.7, 0.6},
	"nice":         {0.6, 1.0},
	"best":         {1.0, 0.3},
	"better":       {0.5, 0.5},
	"happy":        {0.8, 1.0},
	"pleased":      {0.5, 0.8},
	"impressed":    {0.7, 0.9},
	"impressive":   {1.0, 1.0},
	"elegant":      {0.5, 0.8},
	"sleek":        {0.4, 0.6},
	"reliable":     {0.3, 0.5},
	"efficient":    {0.3, 0.6},
	"powerful":     {0.3, 1.0},
	"smooth":       {0.4, 0.6},
	"seamless":     {0.5, 0.6},
	"easy":         {0.43, 0.83},
	"intuitive":    {0.5, 0.7},
	"helpful":      {0.4, 0.5},
	"useful":       {0.3, 0.3},
	"fast":         {0.2, 0.6},
	"quick":        {0.33, 0.5},
	"accurate":     {0.4, 0.6},
	"solid":        {0.3, 0.4},
	"worth":        {0.3, 0.1},
	"reasonable":   {0.2, 0.6},
	"affordable":   {0.2, 0.5},
	"recommend":    {0.2, 0.2},
	"favorite":     {0.5, 1.0},
	"incredible":   {0.9, 0.9},
	"superb":       {1.0, 1.0},
	"clean":        {0.37, 0.69},
	"quiet":        {0.2, 0.4},
	"premium":      {0.3, 0.6},
	"luxury":       {0.3, 0.6},
	"enjoy":        {0.4, 0.5},
	"satisfied":    {0.5, 1.0},
	"flawless":     {0.9, 0.9},
	"versatile":    {0.4, 0.6},
	"brilliant":    {0.9, 1.0},
	"modern":       {0.2, 0.3},
	"glad":         {0.5, 1.0},
	"fine":         {0.42, 0.5},
	"dependable":   {0.3, 0.5},
	"consistent":   {0.25, 0.25},
	"productive":   {0.3, 0.4},
	"impeccable":   {0.8, 0.9},
	"remarkable":   {0.75, 0.75},
	"outstanding":  {0.5, 0.5},
	"delighted":    {0.7, 1.0},
	"top":          {0.5, 0.5},

	// negative
	"hate":          {-0.8, 0.9},
	"hated":         {-0.8, 0.9},
	"terrible":      {-1.0, 1.0},
	"awful":         {-1.0, 1.0},
	"horrible":      {-1.0, 1.0},
	"worst":         {-1.0, 1.0},
	"bad":           {-0.7, 0.67},
	"worse":         {-0.4, 0.6},
	"poor":          {-0.4, 0.6},
	"disappointed":  {-0.75, 0.75},
	"disappointing": {-0.6, 0.7},
	"broken":        {-0.4, 0.4},
	"broke":         {-0.4, 0.4},
	"expensive":     {-0.5, 0.7},
	"overpriced":    {-0.6, 0.8},
	"problem":       {-0.3, 0.4},
	"problems":      {-0.3, 0.4},
	"issue":         {-0.2, 0.3},
	"issues":        {-0.2, 0.3},
	"slow":          {-0.3, 0.4},
	"buggy":         {-0.5, 0.6},
	"useless":       {-0.5, 0.2},
	"annoying":      {-0.8, 0.9},
	"frustrating":   {-0.4, 0.7},
	"noisy":         {-0.3, 0.6},
	"loud":          {-0.1, 0.4},
	"cheap":         {-0.2, 0.7},
	"flimsy":        {-0.5, 0.6},
	"unreliable":    {-0.5, 0.6},
	"failed":        {-0.5, 0.3},
	"fail":          {-0.5, 0.3},
	"wrong":         {-0.5, 0.9},
	"regret":        {-0.6, 0.8},
	"mediocre":      {-0.3, 0.6},
	"confusing":     {-0.3, 0.6},
	"difficult":     {-0.5, 1.0},
	"hard":          {-0.29, 0.54},
	"complicated":   {-0.5, 1.0},
	"hallucinates":  {-0.4, 0.5},
	"inaccurate":    {-0.4, 0.6},
	"ugly":          {-0.7, 1.0},
	"leaking":       {-0.4, 0.3},
	"leaks":         {-0.4, 0.3},
	"sad":           {-0.5, 1.0},
	"angry":         {-0.5, 1.0},
	"unhappy":       {-0.6, 0.9},
	"waste":         {-0.5, 0.4},
	"nightmare":     {-0.8, 0.9},
	"outdated":      {-0.3, 0.4},
}
