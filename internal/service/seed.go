package service

import (
	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// defaultQuizzes возвращает стартовый набор из шести викторин,
// упорядоченных от Beginner к Expert
func defaultQuizzes() []entity.Quiz {
	return []entity.Quiz{
		{
			Title:       "Technology Fundamentals",
			Description: "Learn the basic concepts of modern technology and computing",
			Level:       1,
			Difficulty:  entity.DifficultyBeginner,
			Category:    "Technology",
			OrderNum:    1,
			IsActive:    true,
			Questions: entity.QuestionList{
				{
					Text:          "What does CPU stand for?",
					Options:       []string{"Computer Processing Unit", "Central Processing Unit", "Central Program Unit", "Computer Program Unit"},
					CorrectAnswer: 1,
					Explanation:   "CPU stands for Central Processing Unit, which is the main component of a computer that performs calculations and executes instructions.",
				},
				{
					Text:          "What is the primary function of RAM in a computer?",
					Options:       []string{"Permanent storage", "Temporary storage for active programs", "Internet connectivity", "Display graphics"},
					CorrectAnswer: 1,
					Explanation:   "RAM (Random Access Memory) provides temporary storage for programs and data that are currently being used by the computer.",
				},
				{
					Text:          "What does 'www' stand for in web addresses?",
					Options:       []string{"World Wide Web", "World Web Wide", "Web World Wide", "Wide World Web"},
					CorrectAnswer: 0,
					Explanation:   "WWW stands for World Wide Web, which is the system of interlinked hypertext documents accessed via the Internet.",
				},
			},
		},
		{
			Title:       "Science Basics",
			Description: "Explore fundamental concepts in physics, chemistry, and biology",
			Level:       1,
			Difficulty:  entity.DifficultyBeginner,
			Category:    "Science",
			OrderNum:    2,
			IsActive:    true,
			Questions: entity.QuestionList{
				{
					Text:          "What is the chemical symbol for water?",
					Options:       []string{"H2O", "HO2", "H3O", "HO"},
					CorrectAnswer: 0,
					Explanation:   "Water's chemical formula is H2O, meaning it consists of two hydrogen atoms and one oxygen atom.",
				},
				{
					Text:          "What force keeps planets in orbit around the sun?",
					Options:       []string{"Magnetism", "Gravity", "Friction", "Electricity"},
					CorrectAnswer: 1,
					Explanation:   "Gravity is the force that attracts objects with mass toward each other, keeping planets in orbit around the sun.",
				},
				{
					Text:          "What is the basic unit of life?",
					Options:       []string{"Atom", "Molecule", "Cell", "Tissue"},
					CorrectAnswer: 2,
					Explanation:   "The cell is the basic structural and functional unit of all living organisms.",
				},
			},
		},
		{
			Title:       "Programming Concepts",
			Description: "Understanding software development and programming principles",
			Level:       2,
			Difficulty:  entity.DifficultyIntermediate,
			Category:    "Technology",
			OrderNum:    3,
			IsActive:    true,
			Questions: entity.QuestionList{
				{
					Text:          "What is a variable in programming?",
					Options:       []string{"A fixed value", "A container for storing data", "A type of loop", "A programming language"},
					CorrectAnswer: 1,
					Explanation:   "A variable is a container or storage location with an associated name that holds data which can be modified during program execution.",
				},
				{
					Text:          "What does 'debugging' mean in programming?",
					Options:       []string{"Writing new code", "Finding and fixing errors in code", "Deleting old code", "Running a program"},
					CorrectAnswer: 1,
					Explanation:   "Debugging is the process of finding and fixing errors (bugs) in computer programs to ensure they work correctly.",
				},
				{
					Text:          "What is an algorithm?",
					Options:       []string{"A programming language", "A step-by-step procedure to solve a problem", "A type of computer", "A software application"},
					CorrectAnswer: 1,
					Explanation:   "An algorithm is a step-by-step procedure or set of rules designed to solve a specific problem or perform a task.",
				},
				{
					Text:          "What is the purpose of a loop in programming?",
					Options:       []string{"To store data", "To repeat a block of code", "To create variables", "To end a program"},
					CorrectAnswer: 1,
					Explanation:   "A loop is used to repeat a block of code multiple times, making programs more efficient and reducing code duplication.",
				},
			},
		},
		{
			Title:       "Mathematics Fundamentals",
			Description: "Essential mathematical concepts and problem-solving",
			Level:       2,
			Difficulty:  entity.DifficultyIntermediate,
			Category:    "Mathematics",
			OrderNum:    4,
			IsActive:    true,
			Questions: entity.QuestionList{
				{
					Text:          "What is the value of π (pi) approximately?",
					Options:       []string{"3.14159", "2.71828", "1.41421", "1.61803"},
					CorrectAnswer: 0,
					Explanation:   "Pi (π) is approximately 3.14159, representing the ratio of a circle's circumference to its diameter.",
				},
				{
					Text:          "What is the Pythagorean theorem?",
					Options:       []string{"a + b = c", "a² + b² = c²", "a × b = c", "a ÷ b = c"},
					CorrectAnswer: 1,
					Explanation:   "The Pythagorean theorem states that in a right triangle, the square of the hypotenuse equals the sum of squares of the other two sides: a² + b² = c².",
				},
				{
					Text:          "What is a prime number?",
					Options:       []string{"A number divisible by many factors", "A number greater than 10", "A number divisible only by 1 and itself", "An even number"},
					CorrectAnswer: 2,
					Explanation:   "A prime number is a natural number greater than 1 that has no positive divisors other than 1 and itself.",
				},
			},
		},
		{
			Title:       "Data Science & Analytics",
			Description: "Advanced concepts in data analysis and machine learning",
			Level:       3,
			Difficulty:  entity.DifficultyAdvanced,
			Category:    "Data Science",
			OrderNum:    5,
			IsActive:    true,
			Questions: entity.QuestionList{
				{
					Text:          "What is machine learning?",
					Options:       []string{"Programming robots", "A subset of AI that learns from data", "Computer hardware", "A programming language"},
					CorrectAnswer: 1,
					Explanation:   "Machine learning is a subset of artificial intelligence that enables computers to learn and improve from data without being explicitly programmed.",
				},
				{
					Text:          "What is the purpose of data visualization?",
					Options:       []string{"To store data", "To make data easier to understand", "To delete unnecessary data", "To encrypt data"},
					CorrectAnswer: 1,
					Explanation:   "Data visualization helps present data in graphical formats to make complex information easier to understand and analyze.",
				},
				{
					Text:          "What is a neural network?",
					Options:       []string{"A computer network", "A computing system inspired by biological neural networks", "A type of database", "A programming framework"},
					CorrectAnswer: 1,
					Explanation:   "A neural network is a computing system inspired by biological neural networks, used in machine learning to recognize patterns and make decisions.",
				},
				{
					Text:          "What does 'big data' refer to?",
					Options:       []string{"Large file sizes", "Datasets too large for traditional processing", "Important data", "Expensive data storage"},
					CorrectAnswer: 1,
					Explanation:   "Big data refers to datasets that are too large, complex, or fast-changing for traditional data processing methods to handle effectively.",
				},
				{
					Text:          "What is statistical correlation?",
					Options:       []string{"Causation between variables", "A measure of linear relationship between variables", "Data storage method", "A type of graph"},
					CorrectAnswer: 1,
					Explanation:   "Statistical correlation measures the strength and direction of a linear relationship between two variables, ranging from -1 to +1.",
				},
			},
		},
		{
			Title:       "Advanced Physics & Engineering",
			Description: "Complex concepts in physics, engineering, and applied sciences",
			Level:       4,
			Difficulty:  entity.DifficultyExpert,
			Category:    "Physics",
			OrderNum:    6,
			IsActive:    true,
			Questions: entity.QuestionList{
				{
					Text:          "What is quantum entanglement?",
					Options:       []string{"A type of chemical bond", "A phenomenon where particles remain connected", "A mathematical equation", "A type of energy"},
					CorrectAnswer: 1,
					Explanation:   "Quantum entanglement is a phenomenon where two or more particles become correlated in such a way that the quantum state of each particle cannot be described independently.",
				},
				{
					Text:          "What is the theory of relativity primarily about?",
					Options:       []string{"Chemical reactions", "Space, time, and gravity", "Biological evolution", "Computer algorithms"},
					CorrectAnswer: 1,
					Explanation:   "Einstein's theory of relativity describes the relationship between space, time, and gravity, fundamentally changing our understanding of the universe.",
				},
				{
					Text:          "What is thermodynamics?",
					Options:       []string{"Study of motion", "Study of heat and energy transfer", "Study of light", "Study of sound"},
					CorrectAnswer: 1,
					Explanation:   "Thermodynamics is the branch of physics that deals with heat, work, temperature, and energy transfer in physical systems.",
				},
				{
					Text:          "What is electromagnetic radiation?",
					Options:       []string{"Nuclear decay", "Waves of electric and magnetic fields", "Chemical reactions", "Gravitational waves"},
					CorrectAnswer: 1,
					Explanation:   "Electromagnetic radiation consists of waves of electric and magnetic fields traveling through space, including light, radio waves, and X-rays.",
				},
				{
					Text:          "What is the uncertainty principle?",
					Options:       []string{"A mathematical theorem", "A fundamental limit on measurement precision", "A type of probability", "A computer algorithm"},
					CorrectAnswer: 1,
					Explanation:   "Heisenberg's uncertainty principle states that there's a fundamental limit to how precisely we can simultaneously know certain pairs of properties of a particle.",
				},
				{
					Text:          "What is superconductivity?",
					Options:       []string{"Very fast computing", "Zero electrical resistance in materials", "High-speed internet", "Advanced programming"},
					CorrectAnswer: 1,
					Explanation:   "Superconductivity is a phenomenon where certain materials exhibit zero electrical resistance and expel magnetic fields when cooled below a critical temperature.",
				},
			},
		},
	}
}
